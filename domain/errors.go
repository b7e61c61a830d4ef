package domain

import (
	"context"
	"errors"
	"fmt"
)

// Failures a source can report. None of them is ever surfaced to the host:
// the orchestrator turns each into a skipped result.
var (
	// ErrNoVersions means the source answered but advertises nothing usable:
	// an unknown package, a repository without tags, or tags that do not
	// look like versions.
	ErrNoVersions = errors.New("no published version found")

	// ErrAccessDenied means the source refused the request: bad or missing
	// credentials, insufficient permissions, or rate limiting.
	ErrAccessDenied = errors.New("access denied by source")
)

// ConfigurationError reports caller misuse detected before any source is
// contacted. It is the only error class surfaced to the host, and only at
// construction time.
type ConfigurationError struct {
	Field  string // which argument is wrong, when known
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
	}
	return "invalid configuration: " + e.Reason
}

// ParseError reports input that could not be interpreted, typically a
// version string or a metadata payload.
type ParseError struct {
	Value string // the offending input
	Err   error  // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %q", e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NetworkError wraps a transport or protocol failure while querying a source.
type NetworkError struct {
	Op  string // short description of the attempted operation
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Reason classifies why a check was skipped.
type Reason string

const (
	ReasonNotFound     Reason = "not-found"
	ReasonAccessDenied Reason = "access-denied"
	ReasonNetwork      Reason = "network"
	ReasonParse        Reason = "parse"
	ReasonInternal     Reason = "internal"
)

// ClassifyFailure maps a resolver or parser error onto the closed reason
// set. Unrecognized errors count as network failures: sources only do IO,
// so an untyped error is an environmental one.
func ClassifyFailure(err error) Reason {
	var parseErr *ParseError
	var netErr *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoVersions):
		return ReasonNotFound
	case errors.Is(err, ErrAccessDenied):
		return ReasonAccessDenied
	case errors.As(err, &parseErr):
		return ReasonParse
	case errors.As(err, &netErr):
		return ReasonNetwork
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ReasonNetwork
	default:
		return ReasonNetwork
	}
}
