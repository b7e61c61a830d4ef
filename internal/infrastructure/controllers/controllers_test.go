package controllers_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sourcePkg "github.com/s3dev/gitvck/infrastructure/source"
	"github.com/s3dev/gitvck/internal/infrastructure/controllers"
)

func TestCheckController(t *testing.T) {
	t.Parallel()

	t.Run("should bind as the check subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController()

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "check", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})

	t.Run("should register its flags", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController()
		cmd := &cobra.Command{Use: "check"}

		// when
		controller.AddFlags(cmd)

		// then
		for _, name := range []string{"name", "source", "path", "version", "token", "timeout"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
		}
	})

	t.Run("should not panic on a misconfigured check", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController()
		cmd := &cobra.Command{Use: "check"}
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Set("source", "ftp"))

		// when / then
		assert.NotPanics(t, func() {
			controller.Execute(cmd, nil)
		})
	})
}

func TestRunController(t *testing.T) {
	t.Parallel()

	t.Run("should bind as the run subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewRunController(sourcePkg.NewRegistry())

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "run", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}

func TestNewControllers(t *testing.T) {
	t.Parallel()

	t.Run("should aggregate every controller", func(t *testing.T) {
		t.Parallel()

		// given
		check := controllers.NewCheckController()
		run := controllers.NewRunController(sourcePkg.NewRegistry())

		// when
		all := controllers.NewControllers(check, run)

		// then
		require.Len(t, *all, 2)
		assert.Equal(t, "check", (*all)[0].GetBind().Use)
		assert.Equal(t, "run", (*all)[1].GetBind().Use)
	})
}
