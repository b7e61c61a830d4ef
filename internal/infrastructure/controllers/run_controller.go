package controllers

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/s3dev/gitvck/application"
	"github.com/s3dev/gitvck/config"
	sourcePkg "github.com/s3dev/gitvck/infrastructure/source"
	"github.com/s3dev/gitvck/internal/domain/entities"
)

// RunController handles the "run" subcommand (batch mode).
type RunController struct {
	sources *sourcePkg.Registry
}

// NewRunController creates a new RunController.
func NewRunController(sources *sourcePkg.Registry) *RunController {
	return &RunController{sources: sources}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Run every check in the config file",
		Long: `Run every version check declared in the configuration file and
print a notice for each dependency that is behind its source.

Checks that cannot be completed (unreachable source, unknown package,
rate limiting) are skipped silently; the summary counts them.`,
	}
}

// Execute runs the batch check mode.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	only, _ := cmd.Flags().GetString("only")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Load configuration
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.FindConfigFile()
		if err != nil {
			logger.Errorf(
				"no config file found: %v\nSpecify one with --config or create gitvck.yaml",
				err,
			)
			return
		}
	}

	logger.Infof("Using config file: %s", cfgPath)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	service := application.NewCheckService(
		it.sources,
		application.WithTimeout(time.Duration(cfg.Defaults.Timeout)),
	)

	if runErr := service.Run(ctx, cfg, application.RunOptions{
		Verbose: verbose,
		Only:    only,
	}); runErr != nil {
		logger.Errorf("Run failed: %v", runErr)
	}
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("only", "", "Only run the check with this name")
}
