// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the modload command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "modload",
		Short: "Resolve and load versioned modules",
		Long: titleStyle.Render("modload") + mutedStyle.Render(" - resolve and load versioned modules") + `

modload resolves module versions against a catalog, fetches the matching
artifacts, and merges their exports into one shared namespace. Loads issued
together form a burst that completes once every module has reported.

` + mutedStyle.Render("Examples:") + `
  modload resolve markermanager 1       Newest 1.x release and its URL
  modload load dragzoom@1.2 labeledmarker@dev
  modload catalog list                  Every module and version
  modload serve --release ./tags        Serve artifacts over HTTP`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/modload/config.cue)")
	flags.StringVar(&app.flags.catalogPath, "catalog", "", "catalog file (.cue, .yaml, .toml or .hcl; default is the built-in catalog)")
	flags.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newResolveCommand(app),
		newLoadCommand(app),
		newCatalogCommand(app),
		newServeCommand(app),
		newConfigCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's status.
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}
	app.renderError(err)
	os.Exit(exitCode(err))
}
