// Package cli provides the command-line interface for tasklist.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tasklist.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tasklist",
		Short: "Personal task list manager",
		Long: `tasklist keeps a personal list of short tasks with a priority,
a category and an optional due date.

Run without arguments to open the interactive view, or use the
subcommands below for one-shot edits and scripting.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Parsed again by main before the container is built; declared here so
	// cobra accepts it on every subcommand.
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to an override config file")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(c)
	toggleCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupTask

	clearCmd := newClearCompletedCommand(c)
	clearCmd.GroupID = groupTask

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	root.AddCommand(
		configCmd,
		addCmd,
		listCmd,
		editCmd,
		toggleCmd,
		rmCmd,
		statsCmd,
		clearCmd,
		exportCmd,
		tuiCmd,
	)

	return root
}

// launchTUI runs the interactive UI on the alternate screen.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("tui: no task store")
	}
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
