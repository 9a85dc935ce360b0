// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

func TestCUEEvaluator(t *testing.T) {
	t.Parallel()

	req := loader.FetchRequest{Name: "widget", URL: "mem://widget.cue"}
	tests := []struct {
		name    string
		data    string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "exports",
			data: `module: "widget"
exports: {
	foo: 42
	util: format: "%s"
}`,
			want: map[string]string{"foo": "42", "util": "map[format:%s]"},
		},
		{
			name: "no exports",
			data: `module: "widget"`,
			want: map[string]string{},
		},
		{name: "missing module", data: `exports: {}`, wantErr: true},
		{name: "bad module name", data: `module: "1widget"`, wantErr: true},
		{name: "unknown field", data: `module: "widget", extra: true`, wantErr: true},
		{name: "syntax error", data: `module: "widget`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mod, err := CUEEvaluator{}.Evaluate(t.Context(), req, []byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArtifact) {
					t.Errorf("Evaluate() error = %v, want ErrInvalidArtifact", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if mod.Name != "widget" {
				t.Errorf("Name = %q, want widget", mod.Name)
			}
			if len(mod.Exports) != len(tt.want) {
				t.Errorf("Exports = %v, want %v", mod.Exports, tt.want)
			}
			for k, want := range tt.want {
				if got := fmt.Sprint(mod.Exports[k]); got != want {
					t.Errorf("Exports[%s] = %s, want %s", k, got, want)
				}
			}
		})
	}
}

func TestShellEvaluator(t *testing.T) {
	t.Parallel()

	req := loader.FetchRequest{
		Name:       "widget",
		URL:        "mem://widget/1.1/src/widget.sh",
		Resolution: resolver.Resolution{Name: "widget", Version: "1.1", Path: "/1.1"},
	}
	script := `
provide foo 42
provide util.format '%s'
provide greeting hello, world
provide version "$MODLOAD_VERSION"
for i in 1 2; do
	provide "items.n$i" "$i"
done
echo "declaring $MODLOAD_MODULE"
loaded widget
`
	mod, err := ShellEvaluator{}.Evaluate(t.Context(), req, []byte(script))
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if mod.Name != "widget" {
		t.Errorf("Name = %q, want widget", mod.Name)
	}
	want := map[string]any{
		"foo":         "42",
		"util.format": "%s",
		"greeting":    "hello, world",
		"version":     "1.1",
		"items.n1":    "1",
		"items.n2":    "2",
	}
	if len(mod.Exports) != len(want) {
		t.Errorf("Exports = %v, want %v", mod.Exports, want)
	}
	for k, v := range want {
		if mod.Exports[k] != v {
			t.Errorf("Exports[%s] = %v, want %v", k, mod.Exports[k], v)
		}
	}
}

func TestShellEvaluator_Errors(t *testing.T) {
	t.Parallel()

	req := loader.FetchRequest{Name: "widget", URL: "mem://widget.sh"}
	tests := []struct {
		name    string
		script  string
		want    error
		wantMsg string
	}{
		{"never loaded", "provide foo 1", ErrInvalidArtifact, "never called loaded"},
		{"external command", "rm -rf /tmp/nothing\nloaded widget", ErrCommandNotAllowed, "rm"},
		{"bad usage under set -e", "set -e\nprovide foo\nloaded widget", ErrInvalidArtifact, "usage: provide"},
		{"bad path", "set -e\nprovide a..b 1\nloaded widget", ErrInvalidArtifact, "status 2"},
		{"bad name", "set -e\nloaded 9lives", ErrInvalidArtifact, "status 2"},
		{"two names", "set -e\nloaded widget\nloaded other", ErrInvalidArtifact, "already declared"},
		{"explicit exit", "loaded widget\nexit 3", ErrInvalidArtifact, "status 3"},
		{"parse error", "if then fi", ErrInvalidArtifact, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ShellEvaluator{}.Evaluate(t.Context(), req, []byte(tt.script))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Evaluate() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestShellEvaluator_NoFileAccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := fmt.Sprintf("echo leak > %q\necho quiet > /dev/null\nloaded widget\n", out)

	mod, err := ShellEvaluator{}.Evaluate(t.Context(), loader.FetchRequest{Name: "widget"}, []byte(script))
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if mod.Name != "widget" {
		t.Errorf("Name = %q", mod.Name)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("script wrote %s (stat err = %v)", out, err)
	}
}
