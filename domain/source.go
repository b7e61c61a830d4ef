package domain

import "context"

// Source resolves the newest version one kind of source advertises.
// Implementations are safe for concurrent use, honor ctx deadlines, and
// report failures through the domain error types (ErrNoVersions,
// ErrAccessDenied, *NetworkError, *ParseError) so the orchestrator can
// classify them.
type Source interface {
	// Kind identifies which CheckRequest.Source values this source serves.
	Kind() SourceKind

	// LatestVersion returns the newest published version for the request,
	// in the source's own spelling.
	LatestVersion(ctx context.Context, req CheckRequest) (string, error)
}
