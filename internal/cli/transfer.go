package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import projects, people and task trees from YAML",
		Long: `Import a YAML document. Projects are matched by code and people by
name; everything else is created. Parents are created before their
subtasks.

File format:
  people:
    - name: Ada
      email: ada@example.com
  projects:
    - name: Website
      code: WEB
      tasks:
        - name: Design
          priority: 1
          start_date: 2025-01-06
          subtasks:
            - name: Spec
              assignee: Ada

Use --dry-run to validate the document without writing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			var doc usecase.Document
			if err := yaml.Unmarshal(content, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Document: doc,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d project(s), %d person(s), %d task(s)\n",
				verb, out.ProjectsCreated, out.PeopleCreated, out.TasksCreated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without writing")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Output    string
		ProjectID int
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export projects, people and task trees as YAML",
		Long: `Write the store as a YAML document that import reads back.

Examples:
  teamtasks export > backup.yaml
  teamtasks export --project 1 -o website.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ExportTasksInput{}
			if opts.ProjectID > 0 {
				in.ProjectID = &opts.ProjectID
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)

			data, err := yaml.Marshal(out.Document)
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}

			if opts.Output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.Output, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", opts.Output, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().IntVar(&opts.ProjectID, "project", 0, "Only export this project")

	return cmd
}
