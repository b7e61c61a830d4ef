package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies where published versions of a dependency live.
// The set is closed: requests carry exactly one kind, fixed at construction.
type SourceKind string

const (
	// KindRegistry is a package index queried over its JSON API (PyPI).
	KindRegistry SourceKind = "pypi"
	// KindGoProxy is a Go module proxy.
	KindGoProxy SourceKind = "goproxy"
	// KindForge is a hosted git forge (GitHub or GitLab) queried over its API.
	KindForge SourceKind = "github"
	// KindRepository is a git repository reached directly, either a local
	// working copy or a remote URL.
	KindRepository SourceKind = "git"
)

func (k SourceKind) String() string { return string(k) }

var sourceKindAliases = map[string]SourceKind{
	"pypi":       KindRegistry,
	"registry":   KindRegistry,
	"goproxy":    KindGoProxy,
	"gomod":      KindGoProxy,
	"github":     KindForge,
	"gitlab":     KindForge,
	"forge":      KindForge,
	"git":        KindRepository,
	"repository": KindRepository,
}

// ParseSourceKind maps a user-supplied source spelling onto a SourceKind.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSourceKind(raw string) (SourceKind, error) {
	kind, ok := sourceKindAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", &ConfigurationError{
			Field:  "source",
			Reason: fmt.Sprintf("must be one of pypi, goproxy, github, gitlab, git (got %q)", raw),
		}
	}
	return kind, nil
}

// CheckRequest describes one version check. Values are validated at
// construction and not mutated afterwards.
type CheckRequest struct {
	Name    string     // name the host goes by, used in the notice
	Source  SourceKind // where to look for published versions
	Path    string     // package name, module path, owner/repo, or repo path/URL
	Version string     // the host's current version
	Token   string     // optional forge credential; empty means anonymous
}

// NewCheckRequest validates the raw arguments and builds a CheckRequest.
// Every failure is a *ConfigurationError: this is the one place where caller
// misuse is reported loudly, before any source is contacted.
func NewCheckRequest(name, source, path, version string) (CheckRequest, error) {
	kind, err := ParseSourceKind(source)
	if err != nil {
		return CheckRequest{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return CheckRequest{}, &ConfigurationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(version) == "" {
		return CheckRequest{}, &ConfigurationError{Field: "version", Reason: "is required"}
	}

	path = strings.TrimSpace(path)
	switch kind {
	case KindForge:
		if path == "" {
			return CheckRequest{}, &ConfigurationError{
				Field:  "path",
				Reason: "a forge source needs an owner/repo or repository URL",
			}
		}
	case KindRepository:
		if path == "" {
			return CheckRequest{}, &ConfigurationError{
				Field:  "path",
				Reason: "a git source needs a local path or remote URL",
			}
		}
	case KindRegistry, KindGoProxy:
		if path == "" {
			path = name
		}
	}

	return CheckRequest{
		Name:    name,
		Source:  kind,
		Path:    path,
		Version: strings.TrimSpace(version),
	}, nil
}

// CheckResult is the outcome of one check. Exactly one of the three shapes
// occurs: up to date (UpToDate set), behind (Message set), or skipped
// (Skipped set with a Reason).
type CheckResult struct {
	UpToDate bool   // a comparison happened and the current version is not behind
	Skipped  bool   // the check could not be completed
	Reason   Reason // why the check was skipped, empty otherwise
	Latest   string // latest version the source advertised, when resolved
	Message  string // notice text when an update is available
}
