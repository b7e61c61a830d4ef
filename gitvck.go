// Package gitvck tells a host program, at startup, whether a newer version
// of a named dependency is available. It queries one source of truth (a
// package index, a hosted forge, or a git repository reached directly),
// compares what it finds against the caller's current version, and prints a
// single advisory notice when the caller is behind. It never upgrades
// anything and never interrupts the host: every environmental failure
// degrades to silence, and only caller misconfiguration is surfaced, at
// construction time.
package gitvck

import (
	"context"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/s3dev/gitvck/application"
	"github.com/s3dev/gitvck/domain"
	sourcePkg "github.com/s3dev/gitvck/infrastructure/source"
)

// settings collects the optional knobs of New.
type settings struct {
	timeout    time.Duration
	out        io.Writer
	token      string
	httpClient *http.Client
	sources    *sourcePkg.Registry
}

// Option configures a VersionCheck.
type Option func(*settings)

// WithTimeout bounds the single network or git call. The default is the
// service's (5s).
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithOutput redirects the notice, which otherwise goes to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithToken supplies a forge credential; without it the environment is
// consulted and anonymous access is the fallback.
func WithToken(token string) Option {
	return func(s *settings) { s.token = token }
}

// WithHTTPClient injects the client used by the registry-style sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithSources replaces the default source set with a custom registry.
func WithSources(reg *sourcePkg.Registry) Option {
	return func(s *settings) { s.sources = reg }
}

// VersionCheck is one configured check, ready to run.
type VersionCheck struct {
	request domain.CheckRequest
	service *application.CheckService
}

// New validates the arguments and builds a VersionCheck. The returned error
// is always a *domain.ConfigurationError: an unrecognized source, a blank
// name or version, or a missing path where the source needs one. No network
// activity happens here.
func New(name, source, path, version string, opts ...Option) (*VersionCheck, error) {
	request, err := domain.NewCheckRequest(name, source, path, version)
	if err != nil {
		return nil, err
	}

	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	request.Token = cfg.token

	registry := cfg.sources
	if registry == nil {
		registry = sourcePkg.Defaults(sourcePkg.Options{
			HTTPClient: cfg.httpClient,
			ForgeToken: cfg.token,
		})
	}

	var serviceOpts []application.Option
	if cfg.timeout > 0 {
		serviceOpts = append(serviceOpts, application.WithTimeout(cfg.timeout))
	}
	if cfg.out != nil {
		serviceOpts = append(serviceOpts, application.WithOutput(cfg.out))
	}

	return &VersionCheck{
		request: request,
		service: application.NewCheckService(registry, serviceOpts...),
	}, nil
}

// Test runs the check and prints at most one notice. It reports true when
// the comparison completed and the current version is not behind; a skipped
// check or an available update reports false. It never panics and never
// blocks beyond the configured timeout.
func (it *VersionCheck) Test() bool {
	return it.TestContext(context.Background())
}

// TestContext is Test under a caller-supplied context.
func (it *VersionCheck) TestContext(ctx context.Context) bool {
	return it.Check(ctx).UpToDate
}

// Check runs the check and returns the full result for programmatic use.
// Nothing is printed beyond the notice Test would print.
func (it *VersionCheck) Check(ctx context.Context) domain.CheckResult {
	return it.service.Check(ctx, it.request)
}

// InstalledVersion reads a module's version from the running binary's build
// info: the main module when modulePath is empty, a dependency otherwise.
// ok is false when the binary carries no build info or the module is not
// among its dependencies.
func InstalledVersion(modulePath string) (version string, ok bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	if modulePath == "" || modulePath == info.Main.Path {
		return info.Main.Version, info.Main.Version != ""
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			return dep.Version, dep.Version != ""
		}
	}
	return "", false
}
