// Package testdoubles provides test doubles (spies, stubs, dummies) for
// domain interfaces. These are hand-crafted implementations, no mock
// frameworks.
package testdoubles

import (
	"context"

	"github.com/s3dev/gitvck/domain"
)

// ---------------------------------------------------------------------------
// SpySource
// ---------------------------------------------------------------------------

// SpySource implements domain.Source as a configurable spy.
// Configure the response fields for the behavior your test exercises,
// then inspect the call-tracking fields to verify interactions.
type SpySource struct {
	// --- identity ---
	SourceKind domain.SourceKind

	// --- LatestVersion ---
	Latest string
	Err    error
	// PanicWith makes LatestVersion panic instead of returning, for
	// exercising the orchestrator's recovery path.
	PanicWith any

	// spy: requests received
	Requests []domain.CheckRequest
	// spy: whether a call arrived with a context deadline set
	SawDeadline bool
}

var _ domain.Source = (*SpySource)(nil)

func (s *SpySource) Kind() domain.SourceKind { return s.SourceKind }

func (s *SpySource) LatestVersion(
	ctx context.Context,
	req domain.CheckRequest,
) (string, error) {
	s.Requests = append(s.Requests, req)
	if _, ok := ctx.Deadline(); ok {
		s.SawDeadline = true
	}
	if s.PanicWith != nil {
		panic(s.PanicWith)
	}
	return s.Latest, s.Err
}

// ---------------------------------------------------------------------------
// DummySource — satisfies the interface but does nothing
// ---------------------------------------------------------------------------

// DummySource is a no-op implementation of domain.Source.
// Use it only for interface compliance tests or as a placeholder.
type DummySource struct {
	SourceKind domain.SourceKind
}

var _ domain.Source = (*DummySource)(nil)

func (d *DummySource) Kind() domain.SourceKind { return d.SourceKind }

func (d *DummySource) LatestVersion(
	_ context.Context,
	_ domain.CheckRequest,
) (string, error) {
	return "", nil
}
