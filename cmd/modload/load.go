// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
)

// errNothingStarted is returned when every requested module failed to resolve.
var errNothingStarted = errors.New("no module could be resolved")

type (
	// loadRequest is one "name@version" argument.
	loadRequest struct {
		Name    catalog.ModuleName
		Version string
	}

	loadFlags struct {
		uncompressed bool
		timeout      time.Duration
		noTree       bool
	}
)

// parseLoadRequest splits "name@version". A bare name asks for the newest release.
func parseLoadRequest(arg string) (loadRequest, error) {
	name, version, _ := strings.Cut(arg, "@")
	req := loadRequest{Name: catalog.ModuleName(name), Version: version}
	if err := req.Name.Validate(); err != nil {
		return loadRequest{}, err
	}
	return req, nil
}

func newLoadCommand(app *App) *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "load <module[@version]>...",
		Short: "Load modules in one burst and print the merged namespace",
		Long: `Load modules in one burst.

Every module is resolved first; modules that cannot be resolved are reported
and skipped. The rest are fetched concurrently and the burst completes once
each one has loaded, failed or timed out. The command exits with status 1
when any module failed.`,
		Example: `  modload load markermanager@1 dragzoom@dev
  modload load --timeout 5s --uncompressed labeledmarker@1.3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs := make([]loadRequest, 0, len(args))
			for _, arg := range args {
				req, err := parseLoadRequest(arg)
				if err != nil {
					return err
				}
				reqs = append(reqs, req)
			}
			return runLoad(cmd.Context(), app, reqs, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.uncompressed, "uncompressed", false, "load uncompressed artifacts")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-module timeout (default from config; negative disables)")
	cmd.Flags().BoolVar(&flags.noTree, "no-tree", false, "do not print the namespace tree")
	return cmd
}

func runLoad(ctx context.Context, app *App, reqs []loadRequest, flags loadFlags) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}
	ctx = logging.WithLogger(ctx, s.logger)
	fetcher, wait := app.NewFetcher(s.cfg, s.logger)
	defer wait()
	batch := loader.NewBatch(fetcher)

	coord := loader.New(s.resolver, batch, loader.Options{
		Logger:      s.logger,
		LoadTimeout: s.cfg.Loader.Timeout,
	})

	done := make(chan loader.BurstReport, 1)
	if err := coord.SetFinalCallback(ctx, func(r loader.BurstReport) { done <- r }); err != nil {
		return err
	}

	var opts []loader.LoadOption
	if flags.uncompressed {
		opts = append(opts, loader.Uncompressed())
	}
	if flags.timeout != 0 {
		opts = append(opts, loader.WithTimeout(flags.timeout))
	}

	var rejected []error
	for _, req := range reqs {
		if err := coord.Load(ctx, req.Name, req.Version, opts...); err != nil {
			err = explain(err)
			rejected = append(rejected, err)
			fmt.Fprintf(app.stdout, "%s %s: %v\n", markFailed, req.Name, err)
		}
	}
	if len(rejected) == len(reqs) {
		coord.Cancel(errNothingStarted)
		<-done
		return &ExitError{Code: 1, Err: errors.Join(append([]error{errNothingStarted}, rejected...)...)}
	}

	batch.Release()
	report := <-done
	printResults(app.stdout, report)
	if !flags.noTree {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, namespaceTree(coord.Namespace().Snapshot()))
	}

	if err := errors.Join(append(rejected, report.Err(), report.Cause)...); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

func printResults(w io.Writer, report loader.BurstReport) {
	results := slices.SortedFunc(slices.Values(report.Results), func(a, b loader.Result) int {
		return cmp.Compare(a.Name, b.Name)
	})
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "%s %s %s\n", markOK, renderResolution(r.Resolution),
				detailStyle.Render(r.Duration.Round(time.Millisecond).String()))
			continue
		}
		fmt.Fprintf(w, "%s %s: %v\n", markFailed, r.Resolution.String(), r.Err)
	}
	fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("%d loaded, %d failed in %s",
		len(report.Loaded()), len(report.Failed()), report.Duration.Round(time.Millisecond))))
}

// namespaceTree renders a registry snapshot with containers as branches and
// exported values as leaves.
func namespaceTree(snapshot map[string]any) string {
	root := tree.Root(titleStyle.Render("namespace"))
	addChildren(root, snapshot)
	return root.String()
}

func addChildren(t *tree.Tree, m map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if child, ok := m[key].(map[string]any); ok {
			sub := tree.Root(key)
			addChildren(sub, child)
			t.Child(sub)
			continue
		}
		t.Child(key + " = " + detailStyle.Render(fmt.Sprint(m[key])))
	}
}
