// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/config"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/issue"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/fetch"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// FetcherFactory builds the fetcher a load burst uses. The returned wait
	// function blocks until every fetch the fetcher started has reported.
	FetcherFactory func(cfg *config.Config, logger *slog.Logger) (f loader.Fetcher, wait func())

	// App wires CLI services and shared dependencies. All cobra handlers
	// receive an App and go through it for configuration and I/O.
	App struct {
		Config     ConfigProvider
		NewFetcher FetcherFactory
		stdout     io.Writer
		stderr     io.Writer
		flags      globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		NewFetcher FetcherFactory
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configPath  string
		catalogPath string
		logLevel    string
		verbose     bool
	}

	// session is everything a command needs after configuration is loaded.
	session struct {
		cfg      *config.Config
		logger   *slog.Logger
		catalog  *catalog.Catalog
		resolver *resolver.Resolver
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewFetcher == nil {
		deps.NewFetcher = defaultFetcher
	}
	return &App{
		Config:     deps.Config,
		NewFetcher: deps.NewFetcher,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

func defaultFetcher(cfg *config.Config, logger *slog.Logger) (loader.Fetcher, func()) {
	f := fetch.New(fetch.Options{
		HTTPTimeout: cfg.HTTP.Timeout,
		MaxBytes:    cfg.HTTP.MaxBytes,
		Logger:      logger,
	})
	return f, f.Wait
}

// loadConfig loads configuration and applies flag overrides.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, err
	}
	switch {
	case a.flags.logLevel != "":
		cfg.Log.Level = a.flags.logLevel
	case a.flags.verbose:
		cfg.Log.Level = "debug"
	}
	if a.flags.catalogPath != "" {
		cfg.Catalog.Path = a.flags.catalogPath
	}
	return cfg, nil
}

// newSession loads configuration, the logger and the catalog.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(a.stderr, logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Prefix: config.AppName,
	})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("configure logging").
			WithSuggestion("Use --log-level debug, info, warn or error").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "path", cfg.Catalog.Path, "modules", cat.Len())

	return &session{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		resolver: resolver.New(cat, cfg.Locations.Resolver()),
	}, nil
}

// loadCatalog reads the catalog at path, or the embedded one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load catalog").
			WithResource(path).
			WithSuggestion("Catalog files end in .cue, .yaml, .yml, .toml or .hcl").
			WithSuggestion("Omit --catalog to use the built-in catalog").
			WithIssue(issue.CatalogLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return cat, nil
}

// explain wraps resolution errors with suggestions for the user.
func explain(err error) error {
	var unknown *resolver.UnknownModuleError
	if errors.As(err, &unknown) {
		ctx := issue.NewErrorContext().
			WithOperation("resolve module").
			WithResource(string(unknown.Name)).
			WithSuggestion("Run 'modload catalog list' to see every module")
		if len(unknown.Suggestions) > 0 {
			names := make([]string, len(unknown.Suggestions))
			for i, s := range unknown.Suggestions {
				names[i] = string(s)
			}
			ctx.WithSuggestion("Did you mean " + strings.Join(names, ", ") + "?")
		}
		return ctx.Wrap(err).BuildError()
	}

	var noMatch *resolver.NoMatchingVersionError
	if errors.As(err, &noMatch) {
		return issue.NewErrorContext().
			WithOperation("resolve module").
			WithResource(string(noMatch.Name)).
			WithSuggestionf("Run 'modload catalog show %s' to see its versions", noMatch.Name).
			WithSuggestionf("Use %s@%s for the development build", noMatch.Name, resolver.Development).
			Wrap(err).
			BuildError()
	}
	return err
}

// renderError prints the error chain and issue guidance in verbose mode.
func (a *App) renderError(err error) {
	if err == nil || !a.flags.verbose {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(a.stderr, detailStyle.Render(ae.Format(true)))
	}
	entry := issue.FromError(err)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render("dark")
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", entry.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}
