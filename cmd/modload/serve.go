// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/artifactserver"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/config"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
)

var errNoArtifactDirs = errors.New("at least one of --release and --dev is required")

func newServeCommand(app *App) *cobra.Command {
	var cfg artifactserver.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve module artifacts over HTTP",
		Long: `Serve release and development artifacts over HTTP.

Files under --release are served at /release/ and files under --dev at /dev/,
which matches the default locations in the configuration. GET /healthz
reports readiness.`,
		Example: `  modload serve --release ./tags --dev ./trunk --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ReleaseDir == "" && cfg.DevelopmentDir == "" {
				return errNoArtifactDirs
			}
			conf, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			logger, err := logging.New(app.stderr, logging.Options{
				Level:      conf.Log.Level,
				Format:     conf.Log.Format,
				Prefix:     config.AppName,
				Timestamps: true,
			})
			if err != nil {
				return err
			}
			cfg.Logger = logger
			return artifactserver.New(cfg).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfg.ReleaseDir, "release", "", "directory served at /release/")
	cmd.Flags().StringVar(&cfg.DevelopmentDir, "dev", "", "directory served at /dev/")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	return cmd
}
