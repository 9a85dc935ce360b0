// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/issue"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

func newCatalogCommand(app *App) *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the module catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	catCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every module and its versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, catalogTable(s.catalog.Entries()))
			return nil
		},
	})

	catCmd.AddCommand(&cobra.Command{
		Use:   "show <module>",
		Short: "Show a module's versions and artifact URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			return showModule(app, s, catalog.ModuleName(args[0]))
		},
	})

	catCmd.AddCommand(newCatalogTagsCommand(app))
	return catCmd
}

func catalogTable(entries []catalog.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("MODULE", "VERSIONS", "NEWEST").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	for _, e := range entries {
		newest := "-"
		if len(e.Versions) > 0 {
			newest = string(e.Versions[len(e.Versions)-1])
		}
		t.Row(string(e.Name), joinVersions(e.Versions), newest)
	}
	return t.String()
}

func joinVersions(vs []catalog.Version) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func showModule(app *App, s *session, name catalog.ModuleName) error {
	versions, ok := s.catalog.Versions(name)
	if !ok {
		return explain(&resolver.UnknownModuleError{Name: name, Suggestions: s.catalog.Suggest(name)})
	}

	fmt.Fprintln(app.stdout, titleStyle.Render(string(name)))
	for _, v := range versions {
		res, err := s.resolver.Resolve(name, string(v))
		if err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "  %-8s %s\n", v, res.URL(false))
	}
	dev, err := s.resolver.Resolve(name, resolver.Development)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "  %-8s %s\n", resolver.Development, dev.URL(false))
	return nil
}

// newCatalogTagsCommand builds a catalog from git release tags.
func newCatalogTagsCommand(app *App) *cobra.Command {
	var cue bool

	cmd := &cobra.Command{
		Use:   "tags <module>=<git-url>...",
		Short: "Derive module versions from git release tags",
		Long: `List the version-like tags of each git remote and print the catalog they
form. Tags are ordered by semantic version, oldest first, and a leading "v"
is dropped. With --cue the output is a catalog file.`,
		Example: `  modload catalog tags dragzoom=https://github.com/example/dragzoom.git --cue > catalog.cue`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]catalog.GitSource, 0, len(args))
			for _, arg := range args {
				name, url, ok := strings.Cut(arg, "=")
				if !ok || url == "" {
					return fmt.Errorf("expected <module>=<git-url>, got %q", arg)
				}
				sources = append(sources, catalog.GitSource{Name: catalog.ModuleName(name), URL: url})
			}

			cat, err := catalog.FromGitTags(cmd.Context(), sources...)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("list git tags").
					WithSuggestion("Check that each URL is a reachable git remote").
					WithIssue(issue.CatalogLoadFailedId).
					Wrap(err).
					BuildError()
			}
			if cue {
				fmt.Fprint(app.stdout, catalogCUE(cat.Entries()))
				return nil
			}
			fmt.Fprintln(app.stdout, catalogTable(cat.Entries()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&cue, "cue", false, "print a CUE catalog file")
	return cmd
}

func catalogCUE(entries []catalog.Entry) string {
	var sb strings.Builder
	sb.WriteString("modules: {\n")
	for _, e := range entries {
		quoted := make([]string, len(e.Versions))
		for i, v := range e.Versions {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&sb, "\t%q: [%s]\n", e.Name, strings.Join(quoted, ", "))
	}
	sb.WriteString("}\n")
	return sb.String()
}
