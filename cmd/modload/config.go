// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/config"
)

// newConfigCommand creates the `modload config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modload configuration",
		Long: `Manage modload configuration.

Configuration is stored in:
  - Linux: ~/.config/modload/config.cue
  - macOS: ~/Library/Application Support/modload/config.cue
  - Windows: %APPDATA%\modload\config.cue

MODLOAD_* environment variables override the file, e.g. MODLOAD_HTTP_TIMEOUT=5s.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			path, found, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
			if err != nil {
				return err
			}
			if !found {
				path = mutedStyle.Render("(using defaults)")
			}
			fmt.Fprintf(app.stdout, "// Config file: %s\n", path)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
			if err != nil {
				return err
			}
			wrote, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			if !wrote {
				fmt.Fprintf(app.stdout, "%s %s already exists\n", warnStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s wrote %s\n", markOK, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}
