package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/s3dev/gitvck/config"
	"github.com/s3dev/gitvck/domain"
	"github.com/s3dev/gitvck/infrastructure/source"
)

// DefaultTimeout bounds the single network or git call of a check when the
// caller's context carries no deadline of its own.
const DefaultTimeout = 5 * time.Second

// CheckService runs version checks: resolve the latest published version,
// compare it against the current one, and write a single advisory notice
// when the caller is behind. Every environmental failure becomes a skipped
// result; nothing a source does can take the host down.
type CheckService struct {
	sources *source.Registry
	timeout time.Duration
	out     io.Writer

	mu sync.Mutex // guards out
}

// Option configures a CheckService.
type Option func(*CheckService)

// WithTimeout sets the per-check deadline applied when the caller's context
// has none. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(it *CheckService) {
		if d > 0 {
			it.timeout = d
		}
	}
}

// WithOutput redirects the notice. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(it *CheckService) {
		if w != nil {
			it.out = w
		}
	}
}

// NewCheckService creates a service over the given source registry.
func NewCheckService(sources *source.Registry, opts ...Option) *CheckService {
	svc := &CheckService{
		sources: sources,
		timeout: DefaultTimeout,
		out:     os.Stderr,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Check runs one version check and returns its result. It writes at most
// one notice and never panics: internal failures, including panicking
// sources, degrade to a skipped result.
func (it *CheckService) Check(ctx context.Context, req domain.CheckRequest) (result domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf("check %q: recovered panic: %v", req.Name, r)
			result = domain.CheckResult{Skipped: true, Reason: domain.ReasonInternal}
		}
	}()

	src, err := it.sources.Get(req.Source)
	if err != nil {
		// Construction validates the kind, so a miss here means the
		// registry was assembled without this source.
		logger.Debugf("check %q: %v", req.Name, err)
		return domain.CheckResult{Skipped: true, Reason: domain.ReasonInternal}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, it.timeout)
		defer cancel()
	}

	latest, err := src.LatestVersion(ctx, req)
	if err != nil {
		reason := domain.ClassifyFailure(err)
		logger.Debugf("check %q: skipped (%s): %v", req.Name, reason, err)
		return domain.CheckResult{Skipped: true, Reason: reason}
	}

	latestVersion, err := domain.ParseVersion(latest)
	if err != nil {
		logger.Debugf("check %q: latest does not parse: %v", req.Name, err)
		return domain.CheckResult{Skipped: true, Reason: domain.ReasonParse, Latest: latest}
	}
	currentVersion, err := domain.ParseVersion(req.Version)
	if err != nil {
		logger.Debugf("check %q: current does not parse: %v", req.Name, err)
		return domain.CheckResult{Skipped: true, Reason: domain.ReasonParse, Latest: latest}
	}

	if currentVersion.LessThan(latestVersion) {
		message := notice(req, latest)
		it.write(message)
		return domain.CheckResult{Latest: latest, Message: message}
	}

	return domain.CheckResult{UpToDate: true, Latest: latest}
}

// RunOptions holds runtime options for a batch run.
type RunOptions struct {
	Verbose bool
	Only    string // If set, only run the check with this name (CLI override)
}

// Run executes every check in the configuration and logs a summary. Checks
// whose entry is misconfigured are counted as errors and logged; the run
// itself carries on.
func (it *CheckService) Run(ctx context.Context, cfg *config.Config, runOpts RunOptions) error {
	if runOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	behind := 0
	upToDate := 0
	skipped := 0
	errorCount := 0

	for _, chk := range cfg.Checks {
		// Skip if CLI filter is set and doesn't match
		if runOpts.Only != "" && chk.Name != runOpts.Only {
			continue
		}

		req, err := domain.NewCheckRequest(chk.Name, chk.Source, chk.Path, chk.Version)
		if err != nil {
			logger.Errorf("Invalid check %q: %v", chk.Name, err)
			errorCount++
			continue
		}
		req.Token = chk.Token
		if req.Token == "" {
			req.Token = cfg.Forge.Token
		}

		logger.Debugf("Checking %q against %s...", req.Name, req.Source)

		switch res := it.Check(ctx, req); {
		case res.Skipped:
			logger.Debugf("%q: skipped (%s)", req.Name, res.Reason)
			skipped++
		case res.UpToDate:
			logger.Debugf("%q: up to date (%s)", req.Name, res.Latest)
			upToDate++
		default:
			behind++
		}
	}

	logger.Infof(
		"Run complete: %d up to date, %d behind, %d skipped, %d errors",
		upToDate, behind, skipped, errorCount,
	)
	return nil
}

// notice builds the advisory message, the library's only output.
func notice(req domain.CheckRequest, latest string) string {
	return fmt.Sprintf(
		"Note: A later version of %s is available.\n"+
			"- Installed version: %s\n"+
			"- Latest version:    %s (source: %s)\n",
		req.Name, req.Version, latest, req.Source,
	)
}

func (it *CheckService) write(message string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, _ = fmt.Fprint(it.out, message)
}
