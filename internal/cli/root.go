// Package cli provides the command-line interface for teamtasks.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupProject = "project"
	groupTask    = "task"
)

// NewRootCommand creates the root command for teamtasks.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "teamtasks",
		Short: "Hierarchical task tracking for teams",
		Long: `teamtasks keeps projects, people and tasks in a local store.

Tasks nest under other tasks of the same project. Every parent change
is checked against the stored hierarchy, so a task can never end up
under itself or one of its own subtasks.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupProject, Title: "Projects and People:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupSetup

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupSetup

	// Project and people commands
	projectCmd := newProjectCommand(c)
	projectCmd.GroupID = groupProject

	personCmd := newPersonCommand(c)
	personCmd.GroupID = groupProject

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	pickerCmd := newPickerCommand(c)
	pickerCmd.GroupID = groupTask

	pickCmd := newPickCommand(c)
	pickCmd.GroupID = groupTask

	root.AddCommand(
		initCmd,
		configCmd,
		serveCmd,
		importCmd,
		exportCmd,
		projectCmd,
		personCmd,
		newCmd,
		listCmd,
		showCmd,
		editCmd,
		rmCmd,
		pickerCmd,
		pickCmd,
	)

	return root
}

// printAnomalies reports hierarchy anomalies on w.
func printAnomalies(w io.Writer, anomalies []hierarchy.Anomaly) {
	for _, a := range anomalies {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", a)
	}
}
