package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// newProjectCommand creates the project command group.
func newProjectCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `Create, list, show and delete projects, and manage their members.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newProjectNewCommand(c))
	cmd.AddCommand(newProjectListCommand(c))
	cmd.AddCommand(newProjectShowCommand(c))
	cmd.AddCommand(newProjectTreeCommand(c))
	cmd.AddCommand(newProjectMemberCommand(c))
	cmd.AddCommand(newProjectRmCommand(c))

	return cmd
}

func newProjectNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name string
		Code string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project",
		Long: `Create a project. Name and code must both be unique.

Examples:
  teamtasks project new --name Website --code WEB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NewProjectUseCase().Execute(cmd.Context(), usecase.NewProjectInput{
				Name: opts.Name,
				Code: opts.Code,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project #%d %s (%s)\n",
				out.Project.ID, out.Project.Name, out.Project.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&opts.Code, "code", "", "Short project code (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newProjectListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their task trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{})
			if err != nil {
				return err
			}
			for i, p := range out.Projects {
				if i > 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				printProjectTree(cmd.OutOrStdout(), p)
			}
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)
			return nil
		},
	}
}

func newProjectShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid project ID: %w", err)
			}
			out, err := c.ShowProjectUseCase().Execute(cmd.Context(), usecase.ShowProjectInput{ProjectID: projectID})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Project)
			}
			printProjectDetail(cmd.OutOrStdout(), out.Project)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

// newProjectMemberCommand creates the project member command group.
func newProjectMemberCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <project-id> <person-id>",
		Short: "Add a person to a project",
		Long: `Add a person to a project. The first member to join is shown as
the project's responsible person.

Examples:
  teamtasks project member add 1 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid project ID: %w", err)
			}
			personID, err := parseID(args[1])
			if err != nil {
				return fmt.Errorf("invalid person ID: %w", err)
			}
			out, err := c.AddProjectMemberUseCase().Execute(cmd.Context(), usecase.AddProjectMemberInput{
				ProjectID: projectID,
				PersonID:  personID,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Added {
				_, _ = fmt.Fprintf(w, "Added person #%d to project #%d %s\n", personID, out.Project.ID, out.Project.Name)
			} else {
				_, _ = fmt.Fprintf(w, "Person #%d is already a member of project #%d %s\n", personID, out.Project.ID, out.Project.Name)
			}
			_, _ = fmt.Fprintf(w, "Responsible: %s\n", out.Project.Responsible)
			return nil
		},
	})

	return cmd
}

// printProjectDetail prints a project's code, responsible person and members.
func printProjectDetail(w io.Writer, p *usecase.ProjectDetail) {
	_, _ = fmt.Fprintf(w, "%s (#%d)\n", p.Name, p.ID)
	_, _ = fmt.Fprintf(w, "Code:        %s\n", p.Code)
	_, _ = fmt.Fprintf(w, "Responsible: %s\n", p.Responsible)
	_, _ = fmt.Fprintln(w, "Members:")
	if len(p.Members) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
	}
	for _, m := range p.Members {
		_, _ = fmt.Fprintf(w, "  #%d %s\n", m.ID, m)
	}
}

func newProjectTreeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Show one project's task tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid project ID: %w", err)
			}
			out, err := c.ShowProjectTreeUseCase().Execute(cmd.Context(), usecase.ShowProjectTreeInput{ProjectID: projectID})
			if err != nil {
				return err
			}
			printProjectTree(cmd.OutOrStdout(), out.Tree)
			printAnomalies(cmd.ErrOrStderr(), out.Anomalies)
			return nil
		},
	}
}

func newProjectRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid project ID: %w", err)
			}
			out, err := c.DeleteProjectUseCase().Execute(cmd.Context(), usecase.DeleteProjectInput{ProjectID: projectID})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted project #%d %s\n", out.Project.ID, out.Project.Name)
			return nil
		},
	}
}

// printProjectTree prints a project header followed by its tasks, two
// spaces deeper per level.
func printProjectTree(w io.Writer, p hierarchy.ProjectTree) {
	_, _ = fmt.Fprintf(w, "%s (#%d)\n", p.Name, p.ID)
	var walk func(nodes []hierarchy.TreeNode, depth int)
	walk = func(nodes []hierarchy.TreeNode, depth int) {
		for _, n := range nodes {
			_, _ = fmt.Fprintf(w, "%s#%d %s\n", strings.Repeat("  ", depth+1), n.ID, n.Name)
			walk(n.Subtasks, depth+1)
		}
	}
	walk(p.Tasks, 0)
}

// newPersonCommand creates the person command group.
func newPersonCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people tasks can be assigned to",
	}

	cmd.AddCommand(newPersonNewCommand(c))
	cmd.AddCommand(newPersonListCommand(c))

	return cmd
}

func newPersonNewCommand(c *app.Container) *cobra.Command {
	var in usecase.NewPersonInput

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Add a person",
		Long: `Add a person.

Examples:
  teamtasks person new --name Ada --email ada@example.com --company Analytical`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NewPersonUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added person #%d %s\n", out.Person.ID, out.Person)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Position, "position", "", "Position or role")
	cmd.Flags().StringVar(&in.Company, "company", "", "Company")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPersonListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListPeopleUseCase().Execute(cmd.Context(), usecase.ListPeopleInput{})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tCOMPANY")
			for _, p := range out.People {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, orDash(p.Email), orDash(p.Position), orDash(p.Company))
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
