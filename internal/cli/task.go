package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name      string
		StartDate string
		Deadline  string
		ProjectID int
		ParentID  int
		Assignee  int
		Priority  int
		Progress  int
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task in a project.

The start date defaults to today and the deadline to the start date.
A parent must be a task of the same project.

Examples:
  # Create a root task
  teamtasks new --project 1 --name "Design"

  # Create a subtask under task #1
  teamtasks new --project 1 --parent 1 --name "Spec" --assign 2

  # Plan it
  teamtasks new --project 1 --name "Launch" --start 2025-03-01 --deadline 2025-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.NewTaskInput{
				ProjectID: opts.ProjectID,
				Name:      opts.Name,
				Priority:  opts.Priority,
				Progress:  opts.Progress,
			}
			if opts.ParentID > 0 {
				input.ParentID = &opts.ParentID
			}
			if opts.Assignee > 0 {
				input.AssignedTo = &opts.Assignee
			}
			var err error
			if input.StartDate, err = parseOptionalDate("start", opts.StartDate); err != nil {
				return err
			}
			if input.Deadline, err = parseOptionalDate("deadline", opts.Deadline); err != nil {
				return err
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.ProjectID, "project", 0, "Owning project ID (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Task name (required)")
	cmd.Flags().IntVar(&opts.ParentID, "parent", 0, "Parent task ID (creates a subtask)")
	cmd.Flags().IntVar(&opts.Assignee, "assign", 0, "Assigned person ID")
	cmd.Flags().StringVar(&opts.StartDate, "start", "", "Planned start (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "Planned end (YYYY-MM-DD, default: start)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "Priority (lower sorts first)")
	cmd.Flags().IntVar(&opts.Progress, "progress", 0, "Progress in percent (0-100)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Search     string
		ProjectID  int
		AssignedTo int
		JSON       bool
		Roots      bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display tasks as an indented list, subtasks below their parents.

Projects are listed by name; inside a project tasks are ordered by
priority, then name.

With --json the tasks are printed with their subtasks nested, together
with project and assignee names.

Examples:
  # Every task
  teamtasks list

  # One project
  teamtasks list --project 2

  # Root tasks only, as JSON
  teamtasks list --json --roots

  # Tasks of person 1 whose name mentions "review"
  teamtasks list --assignee 1 --search review`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var projectID, assignedTo *int
			if opts.ProjectID > 0 {
				projectID = &opts.ProjectID
			}
			if opts.AssignedTo > 0 {
				assignedTo = &opts.AssignedTo
			}

			if opts.JSON {
				out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
					ProjectID:    projectID,
					AssignedTo:   assignedTo,
					NameContains: opts.Search,
					RootsOnly:    opts.Roots,
				})
				if err != nil {
					return err
				}
				printAnomalies(cmd.ErrOrStderr(), out.Anomalies)
				return writeJSON(cmd.OutOrStdout(), out.Tasks)
			}

			out, err := c.IndentedTasksUseCase().Execute(cmd.Context(), usecase.IndentedTasksInput{
				ProjectID:    projectID,
				AssignedTo:   assignedTo,
				NameContains: opts.Search,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			_, _ = fmt.Fprintln(tw, "ID\tNAME")
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(tw, "%d\t%s\n", e.ID, e.Label)
			}
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.ProjectID, "project", 0, "Only list tasks of this project")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print nested JSON")
	cmd.Flags().BoolVar(&opts.Roots, "roots", false, "Only root tasks at the top level (with --json)")
	cmd.Flags().IntVar(&opts.AssignedTo, "assignee", 0, "Only tasks assigned to this person ID")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Only tasks whose name contains this text (case-insensitive)")

	return cmd
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Detail)
			}
			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the task with its subtasks as JSON")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name      string
		StartDate string
		Deadline  string
		ParentID  int
		Assignee  int
		Priority  int
		Progress  int
		Root      bool
		Unassign  bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task's fields or move it in the hierarchy.

A new parent must be in the same project and must not be the task itself
or one of its subtasks. A refused move leaves the task unchanged, even
when other fields were given too.

Examples:
  # Rename
  teamtasks edit 3 --name "Review draft"

  # Move under task #4
  teamtasks edit 3 --parent 4

  # Make it a root task
  teamtasks edit 3 --root

  # Record progress
  teamtasks edit 3 --progress 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			input := usecase.EditTaskInput{
				TaskID:   taskID,
				MakeRoot: opts.Root,
				Unassign: opts.Unassign,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				input.Name = &opts.Name
			}
			if flags.Changed("parent") {
				input.ParentID = &opts.ParentID
			}
			if flags.Changed("assign") {
				input.AssignedTo = &opts.Assignee
			}
			if flags.Changed("priority") {
				input.Priority = &opts.Priority
			}
			if flags.Changed("progress") {
				input.Progress = &opts.Progress
			}
			if flags.Changed("start") {
				d, err := domain.ParseDate(opts.StartDate)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				input.StartDate = &d
			}
			if flags.Changed("deadline") {
				d, err := domain.ParseDate(opts.Deadline)
				if err != nil {
					return fmt.Errorf("--deadline: %w", err)
				}
				input.Deadline = &d
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Updated task #%d\n", out.Task.ID)
			if out.ParentChanged {
				printParentChange(w, out.Task)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New name")
	cmd.Flags().IntVar(&opts.ParentID, "parent", 0, "Move under this task")
	cmd.Flags().BoolVar(&opts.Root, "root", false, "Make the task a root task")
	cmd.Flags().IntVar(&opts.Assignee, "assign", 0, "Assign to this person ID")
	cmd.Flags().BoolVar(&opts.Unassign, "unassign", false, "Clear the assignee")
	cmd.Flags().StringVar(&opts.StartDate, "start", "", "New planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "New planned end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "New priority")
	cmd.Flags().IntVar(&opts.Progress, "progress", 0, "New progress in percent (0-100)")
	cmd.MarkFlagsMutuallyExclusive("parent", "root")
	cmd.MarkFlagsMutuallyExclusive("assign", "unassign")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task and its subtasks",
		Long: `Delete a task. Its subtasks, at every depth, are deleted with it.

Examples:
  teamtasks rm 2
  teamtasks rm "#2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(out.Deleted))
			for _, id := range out.Deleted {
				ids = append(ids, fmt.Sprintf("#%d", id))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", strings.Join(ids, ", "))
			return nil
		},
	}
}

// printTaskDetails prints a task, its position in the tree and its subtasks.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	d := out.Detail

	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", d.ID, d.Name)
	_, _ = fmt.Fprintf(w, "Project: %s (#%d)\n", d.ProjectName, d.Project)

	if len(out.Path) > 0 {
		names := make([]string, 0, len(out.Path))
		for _, t := range out.Path {
			names = append(names, fmt.Sprintf("#%d %s", t.ID, t.Name))
		}
		_, _ = fmt.Fprintf(w, "Path: %s\n", strings.Join(names, " > "))
	}

	switch {
	case out.Parent != nil:
		_, _ = fmt.Fprintf(w, "Parent: #%d %s\n", out.Parent.ID, out.Parent.Name)
	case d.Parent != nil:
		_, _ = fmt.Fprintf(w, "Parent: #%d (unresolved)\n", *d.Parent)
	default:
		_, _ = fmt.Fprintln(w, "Parent: none")
	}

	if d.AssignedToName != nil {
		_, _ = fmt.Fprintf(w, "Assigned: %s\n", *d.AssignedToName)
	} else {
		_, _ = fmt.Fprintln(w, "Assigned: none")
	}

	_, _ = fmt.Fprintf(w, "Schedule: %s .. %s\n", d.StartDate, d.Deadline)
	_, _ = fmt.Fprintf(w, "Priority: %d\n", d.Priority)
	_, _ = fmt.Fprintf(w, "Progress: %d%%\n", d.Progress)
	if out.Task.ActualEndDate != nil {
		_, _ = fmt.Fprintf(w, "Finished: %s\n", out.Task.ActualEndDate)
	}

	if len(d.Subtasks) > 0 {
		_, _ = fmt.Fprintln(w, "\nSubtasks:")
		for _, child := range d.Subtasks {
			_, _ = fmt.Fprintf(w, "  #%d %s (%d%%)\n", child.ID, child.Name, child.Progress)
		}
	}
}

func printParentChange(w io.Writer, task *domain.Task) {
	if task.ParentID == nil {
		_, _ = fmt.Fprintf(w, "Task #%d is now a root task\n", task.ID)
		return
	}
	_, _ = fmt.Fprintf(w, "Task #%d moved under #%d\n", task.ID, *task.ParentID)
}

// parseID parses a positive ID, allowing a leading #.
func parseID(s string) (int, error) {
	s = strings.TrimPrefix(s, "#")
	var id int
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("ID must be positive")
	}
	return id, nil
}

// parseOptionalDate parses value as a date; empty means zero.
func parseOptionalDate(flag, value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
