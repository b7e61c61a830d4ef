package internal

import (
	"go.uber.org/dig"

	sourcePkg "github.com/s3dev/gitvck/infrastructure/source"
	"github.com/s3dev/gitvck/internal/domain/entities"
	"github.com/s3dev/gitvck/internal/infrastructure/controllers"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: sources -> controllers)
	if err := container.Provide(NewSourceRegistry); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}

// NewSourceRegistry builds the default source set. Credentials come from
// the environment here; the config file can still override them per run.
func NewSourceRegistry() *sourcePkg.Registry {
	return sourcePkg.Defaults(sourcePkg.Options{})
}

// AppInternal aggregates the CLI's controllers.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the app context from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers to bind as subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
