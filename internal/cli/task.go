package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/usecase"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Priority string
		Category string
		Due      string
	}

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Long: `Add a task to the top of the list.

Priority and category default to the [defaults] section of the config.

Examples:
  # Add a task
  tasklist add Buy milk

  # Add an urgent work task due tomorrow
  tasklist add "Send report" --priority high --category work --due 2024-03-11`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configOf(c)

			priority := cfg.DefaultPriority()
			if cmd.Flags().Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				priority = p
			}

			category := cfg.Defaults.Category
			if cmd.Flags().Changed("category") {
				category = opts.Category
			}

			due, err := domain.ParseDate(opts.Due)
			if err != nil {
				return err
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Text:     strings.Join(args, " "),
				Priority: priority,
				Category: category,
				DueDate:  due,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", out.Task.ID, out.Task.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority: low, medium or high")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category label")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")

	return cmd
}

// newEditCommand creates the edit command for changing task fields.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Text     string
		Priority string
		Category string
		Due      string
		NoDue    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit the text, priority, category or due date of a task.

Only the given flags are changed.

Examples:
  tasklist edit 1710061200000 --text "Buy oat milk"
  tasklist edit 1710061200000 --priority low --no-due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			if opts.NoDue && cmd.Flags().Changed("due") {
				return errors.New("cannot use --due and --no-due together")
			}

			input := usecase.EditTaskInput{TaskID: id, ClearDue: opts.NoDue}
			if cmd.Flags().Changed("text") {
				input.Text = &opts.Text
			}
			if cmd.Flags().Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				input.Priority = &p
			}
			if cmd.Flags().Changed("category") {
				input.Category = &opts.Category
			}
			if cmd.Flags().Changed("due") {
				d, err := domain.ParseDate(opts.Due)
				if err != nil {
					return err
				}
				input.DueDate = &d
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", out.Task.ID, out.Task.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "New task text")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "New priority: low, medium or high")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "New category label")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.NoDue, "no-due", false, "Remove the due date")

	return cmd
}

// newToggleCommand creates the toggle command for flipping completion.
func newToggleCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{TaskID: id})
			if err != nil {
				return err
			}

			state := "pending"
			if out.Task.Completed {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked task #%d as %s\n", out.Task.ID, state)
			return nil
		},
	}
	return cmd
}

// newRmCommand creates the rm command for deleting a task.
func newRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: id})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", out.Task.ID, out.Task.Text)
			return nil
		},
	}
	return cmd
}

// newListCommand creates the list command for listing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Filter string
		Search string
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display the task list, newest first.

The search matches text and category, ignoring case, and is applied
before the filter.

Examples:
  tasklist list
  tasklist list --filter pending
  tasklist list --filter high --search work`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := opts.Filter
			if !cmd.Flags().Changed("filter") {
				filter = string(configOf(c).DefaultFilter())
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Filter: filter,
				Search: opts.Search,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(w, domain.EmptyStateTitle)
				_, _ = fmt.Fprintln(w, domain.EmptyStateHint(opts.Search))
				return nil
			}
			printTaskList(w, out.Tasks, c.Clock)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Filter: all, pending, completed or high")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Search text or category")

	return cmd
}

// printTaskList prints tasks as aligned columns.
func printTaskList(w io.Writer, tasks []domain.Task, clock domain.Clock) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tCATEGORY\tDUE\tTEXT")

	now := clock.Now()
	for i := range tasks {
		task := &tasks[i]

		done := "[ ]"
		if task.Completed {
			done = "[x]"
		}

		category := "-"
		if task.Category != "" {
			category = task.Category
		}

		due := domain.FormatDue(task.DueDate, now)
		if task.IsOverdue(now) {
			due += " (overdue)"
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			task.ID, done, task.Priority.Badge(), category, due, task.Text)
	}
}

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts and completion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowStatsUseCase().Execute(cmd.Context(), usecase.ShowStatsInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Total:      %d\n", out.Stats.Total)
			_, _ = fmt.Fprintf(w, "Pending:    %d\n", out.Stats.Pending)
			_, _ = fmt.Fprintf(w, "Completed:  %d\n", out.Stats.Completed)
			_, _ = fmt.Fprintf(w, "Completion: %d%%\n", out.Stats.CompletionRate)
			return nil
		},
	}
	return cmd
}

// newClearCompletedCommand creates the clear-completed command.
func newClearCompletedCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Long: `Delete every completed task after a confirmation.

Answer "y" to proceed. Use --yes to skip the question.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ClearCompletedUseCase().Execute(cmd.Context(), usecase.ClearCompletedInput{
				Confirmer: newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()),
				Yes:       yes,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Declined {
				_, _ = fmt.Fprintln(w, "Aborted.")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Removed %d completed task(s)\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
		Filter string
		Search string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to json, yaml, csv or pdf",
		Long: `Write the tasks matching --filter and --search in a file format.

Examples:
  tasklist export > tasks.json
  tasklist export --format csv --filter pending
  tasklist export --format pdf --output tasks.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Render fully before touching the output file so a bad flag
			// leaves an existing file intact.
			var buf bytes.Buffer
			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
				Writer: &buf,
				Format: opts.Format,
				Filter: opts.Filter,
				Search: opts.Search,
			})
			if err != nil {
				return err
			}

			if opts.Output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := writeFileAtomic(opts.Output, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d task(s) as %s to %s\n", out.Count, out.Format, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "json", "Format: json, yaml, csv or pdf")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Filter: all, pending, completed or high")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Search text or category")

	return cmd
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// parseTaskID parses a task ID argument. A leading # is accepted.
func parseTaskID(s string) (int64, error) {
	s = strings.TrimPrefix(s, "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// configOf returns the container's config, or the defaults when none is loaded.
func configOf(c *app.Container) *domain.Config {
	if c == nil || c.AppConfig == nil {
		return domain.NewDefaultConfig()
	}
	return c.AppConfig
}
