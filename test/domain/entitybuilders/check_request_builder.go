//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/s3dev/gitvck/domain"
)

// CheckRequestBuilder helps create test check requests with a fluent interface.
type CheckRequestBuilder struct {
	*testkit.BaseBuilder
	name    string
	source  domain.SourceKind
	path    string
	version string
	token   string
}

// NewCheckRequestBuilder creates a new check request builder with sensible defaults.
func NewCheckRequestBuilder() *CheckRequestBuilder {
	return &CheckRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-package",
		source:      domain.KindRegistry,
		path:        "test-package",
		version:     "1.0.0",
	}
}

// WithName sets the name the host goes by.
func (b *CheckRequestBuilder) WithName(name string) *CheckRequestBuilder {
	b.name = name
	return b
}

// WithSource sets the source kind.
func (b *CheckRequestBuilder) WithSource(kind domain.SourceKind) *CheckRequestBuilder {
	b.source = kind
	return b
}

// WithPath sets the package name, owner/repo, or repository path.
func (b *CheckRequestBuilder) WithPath(path string) *CheckRequestBuilder {
	b.path = path
	return b
}

// WithVersion sets the current version.
func (b *CheckRequestBuilder) WithVersion(version string) *CheckRequestBuilder {
	b.version = version
	return b
}

// WithToken sets the forge credential.
func (b *CheckRequestBuilder) WithToken(token string) *CheckRequestBuilder {
	b.token = token
	return b
}

// Build creates the check request (satisfies testkit.Builder interface).
func (b *CheckRequestBuilder) Build() interface{} {
	return b.BuildCheckRequest()
}

// BuildCheckRequest creates the check request with a concrete return type.
func (b *CheckRequestBuilder) BuildCheckRequest() domain.CheckRequest {
	return domain.CheckRequest{
		Name:    b.name,
		Source:  b.source,
		Path:    b.path,
		Version: b.version,
		Token:   b.token,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CheckRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.source = domain.KindRegistry
	b.path = "test-package"
	b.version = "1.0.0"
	b.token = ""
	return b
}

// Clone creates a deep copy of the CheckRequestBuilder.
func (b *CheckRequestBuilder) Clone() testkit.Builder {
	return &CheckRequestBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		source:      b.source,
		path:        b.path,
		version:     b.version,
		token:       b.token,
	}
}
