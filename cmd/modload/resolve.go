// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
)

func newResolveCommand(app *App) *cobra.Command {
	var uncompressed bool

	cmd := &cobra.Command{
		Use:   "resolve <module> <version>",
		Short: "Print the version and URL a request resolves to",
		Long: `Resolve a module version without fetching it.

The requested version matches every published version it prefixes, and the
last match in release order wins. "dev" selects the development build.`,
		Example: `  modload resolve markermanager 1
  modload resolve dragzoom dev --uncompressed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			res, err := s.resolver.Resolve(catalog.ModuleName(args[0]), args[1])
			if err != nil {
				return explain(err)
			}
			s.logger.Debug("resolved", "module", res.Name, "requested", args[1], "version", res.Version)

			fmt.Fprintln(app.stdout, renderResolution(res))
			fmt.Fprintln(app.stdout, res.URL(uncompressed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&uncompressed, "uncompressed", false, "use the uncompressed artifact")
	return cmd
}
