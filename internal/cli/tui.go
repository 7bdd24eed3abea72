package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// It is the same as running `tasklist` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for managing tasks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}
