// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/namespace"
)

const devNull = "/dev/null"

type (
	// ShellEvaluator runs ".sh" artifacts in the mvdan.cc/sh interpreter.
	// Scripts see MODLOAD_MODULE, MODLOAD_VERSION and MODLOAD_URL in their
	// environment. Stdout is discarded; stderr is attached to failures.
	ShellEvaluator struct{}

	// shellModule collects what a script declares through the builtins.
	shellModule struct {
		name    catalog.ModuleName
		exports map[string]any
	}
)

// Evaluate runs the script in data and returns the module it declared.
func (ShellEvaluator) Evaluate(ctx context.Context, req loader.FetchRequest, data []byte) (Module, error) {
	prog, err := syntax.NewParser().Parse(bytes.NewReader(data), req.URL)
	if err != nil {
		return Module{}, fmt.Errorf("%w: failed to parse script: %w", ErrInvalidArtifact, err)
	}

	mod := &shellModule{exports: make(map[string]any)}
	var stderr bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(
			"MODLOAD_MODULE="+string(req.Name),
			"MODLOAD_VERSION="+string(req.Resolution.Version),
			"MODLOAD_URL="+req.URL,
		)),
		interp.StdIO(nil, io.Discard, &stderr),
		interp.ExecHandlers(mod.execHandler),
		interp.OpenHandler(openHandler),
	)
	if err != nil {
		return Module{}, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return Module{}, fmt.Errorf("%w: script exited with status %d: %s",
				ErrInvalidArtifact, status, strings.TrimSpace(stderr.String()))
		}
		return Module{}, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if mod.name == "" {
		return Module{}, fmt.Errorf("%w: script never called loaded", ErrInvalidArtifact)
	}
	if stderr.Len() > 0 {
		logging.FromContext(ctx).Debug("module script wrote to stderr", "module", mod.name, "stderr", strings.TrimSpace(stderr.String()))
	}
	return Module{Name: mod.name, Exports: mod.exports}, nil
}

// execHandler serves the module builtins and refuses everything else.
func (m *shellModule) execHandler(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)
		switch args[0] {
		case "provide":
			return m.provide(hc.Stderr, args[1:])
		case "loaded":
			return m.loaded(hc.Stderr, args[1:])
		default:
			return fmt.Errorf("%w: %s", ErrCommandNotAllowed, args[0])
		}
	}
}

// provide <path> <value...>
func (m *shellModule) provide(stderr io.Writer, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(stderr, "usage: provide <path> <value>")
		return interp.NewExitStatus(2)
	}
	if _, err := namespace.Split(args[0]); err != nil {
		fmt.Fprintf(stderr, "provide: %v\n", err)
		return interp.NewExitStatus(2)
	}
	m.exports[args[0]] = strings.Join(args[1:], " ")
	return nil
}

// loaded <name>
func (m *shellModule) loaded(stderr io.Writer, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: loaded <name>")
		return interp.NewExitStatus(2)
	}
	name := catalog.ModuleName(args[0])
	if err := name.Validate(); err != nil {
		fmt.Fprintf(stderr, "loaded: %v\n", err)
		return interp.NewExitStatus(2)
	}
	if m.name != "" && m.name != name {
		fmt.Fprintf(stderr, "loaded: already declared as %s\n", m.name)
		return interp.NewExitStatus(1)
	}
	m.name = name
	return nil
}

// openHandler only lets scripts redirect to /dev/null. Refusals are
// *os.PathError so the interpreter reports them and keeps running.
func openHandler(ctx context.Context, path string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if path != devNull {
		return nil, &os.PathError{Op: "open", Path: path, Err: ErrCommandNotAllowed}
	}
	return interp.DefaultOpenHandler()(ctx, path, flag, perm)
}
