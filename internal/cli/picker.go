package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/tui"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// runPickerFunc runs the interactive parent picker, allowing it to be mocked in tests.
var runPickerFunc = tui.Run

// newPickerCommand creates the picker command.
func newPickerCommand(c *app.Container) *cobra.Command {
	var excludeID int

	cmd := &cobra.Command{
		Use:   "picker",
		Short: "Print parent picker data as JSON",
		Long: `Print projects with their tasks nested, as used by parent selection
controls: {"data": [{"id": "project-1", "name": ..., "tasks": [...]}]}.

With --exclude, the task and its subtasks are left out and only its own
project is listed, so every remaining task is a valid new parent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.TaskPickerUseCase().Execute(cmd.Context(), usecase.TaskPickerInput{ExcludeTaskID: excludeID})
			if err != nil {
				return err
			}
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)
			return writeJSON(cmd.OutOrStdout(), out.Picker)
		},
	}

	cmd.Flags().IntVar(&excludeID, "exclude", 0, "Task about to be moved")

	return cmd
}

// newPickCommand creates the pick command.
func newPickCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <id>",
		Short: "Choose a new parent interactively",
		Long: `Open a list of the tasks the given task may be moved under.

Keys: enter moves the task under the highlighted one, r makes it a
root task, q or esc leaves without a change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			moved, err := runPickerFunc(c, taskID)
			if err != nil {
				return err
			}
			if moved != nil {
				printParentChange(cmd.OutOrStdout(), moved)
			}
			return nil
		},
	}
}
