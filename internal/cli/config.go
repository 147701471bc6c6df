package cli

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/infra/config"
)

// globalConfigDirFunc locates the global config directory, allowing it to be mocked in tests.
var globalConfigDirFunc = config.DefaultGlobalConfigDir

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage teamtasks configuration files.

Settings are read from the global file
($XDG_CONFIG_HOME/teamtasks/config.toml) and then from
.teamtasks/config.toml, which wins where both set a value.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	var globalOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.ConfigLoader == nil {
				return errors.New("no configuration loader")
			}
			load := c.ConfigLoader.Load
			if globalOnly {
				load = c.ConfigLoader.LoadGlobal
			}
			cfg, err := load()
			if err != nil {
				return err
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&globalOnly, "global", false, "Show only the global configuration")

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the global configuration file",
		Long: `Create $XDG_CONFIG_HOME/teamtasks/config.toml with the default
settings. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.InitGlobalConfig(globalConfigDirFunc())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
