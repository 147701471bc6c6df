package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the task store",
		Long: `Initialize teamtasks in the current directory.

This command creates the .teamtasks/ directory with:
- config.toml: configuration (kept if it already exists)
- teamtasks.db: the SQLite store (teamtasks.json for the json backend)
- logs/: directory for log files

Running init again is safe: an existing store is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), c.InitStoreInput())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(w, "teamtasks already initialized in %s\n", out.DataDir)
			} else {
				_, _ = fmt.Fprintf(w, "Initialized teamtasks in %s\n", out.DataDir)
			}
			if out.ConfigCreated {
				_, _ = fmt.Fprintf(w, "Created %s\n", c.Config.ConfigPath)
			}
			return nil
		},
	}
}
