package controllers

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gitvck "github.com/s3dev/gitvck"
	"github.com/s3dev/gitvck/internal/domain/entities"
)

// CheckController handles the "check" subcommand (one-shot mode).
type CheckController struct{}

// NewCheckController creates a new CheckController.
func NewCheckController() *CheckController {
	return &CheckController{}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Run a single version check",
		Long: `Check one dependency against its source of truth and print a
notice when a later version is available.

The command is advisory: it exits 0 whether the dependency is behind,
up to date, or the source could not be reached. Only misconfigured
arguments are reported as errors.`,
	}
}

// Execute runs the one-shot check.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	name, _ := cmd.Flags().GetString("name")
	source, _ := cmd.Flags().GetString("source")
	path, _ := cmd.Flags().GetString("path")
	version, _ := cmd.Flags().GetString("version")
	token, _ := cmd.Flags().GetString("token")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	vc, err := gitvck.New(name, source, path, version,
		gitvck.WithToken(token),
		gitvck.WithTimeout(timeout),
	)
	if err != nil {
		logger.Errorf("Invalid check: %v", err)
		return
	}

	if vc.TestContext(ctx) {
		logger.Debugf("%q is up to date", name)
	}
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Name of the dependency to check")
	cmd.Flags().String("source", "", "Source of truth (pypi, goproxy, github, gitlab, git)")
	cmd.Flags().String("path", "", "Package name, owner/repo, or repository path/URL")
	cmd.Flags().String("version", "", "The current version to compare against")
	cmd.Flags().String("token", "", "Forge credential (overrides env var detection)")
	cmd.Flags().Duration("timeout", 5*time.Second, "Deadline for the source call")
}
