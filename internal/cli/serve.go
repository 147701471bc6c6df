package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/web"
)

// runServerFunc starts the HTTP server, allowing it to be mocked in tests.
var runServerFunc = func(s *web.Server, addr string) error {
	return s.Run(addr)
}

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Long: `Serve the JSON API.

The listen address defaults to [server] addr in config.toml.

Routes:
  GET    /api/projects                 projects with their task trees
  POST   /api/projects                 create a project
  GET    /api/projects/:id/tree        one project's task tree
  DELETE /api/projects/:id             delete a project and its tasks
  GET    /api/people                   list people
  POST   /api/people                   add a person
  GET    /api/tasks                    tasks with subtasks nested (?project=, ?roots=true)
  POST   /api/tasks                    create a task
  GET    /api/tasks/indented           indented task list (?project=)
  GET    /api/tasks/:id                task details
  PATCH  /api/tasks/:id                edit fields or move the task
  DELETE /api/tasks/:id                delete a task and its subtasks
  GET    /api/tasks/:id/parent-choices tasks it may be moved under
  GET    /api/picker                   parent picker data (?exclude=)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}
			return runServerFunc(web.NewServer(c), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
