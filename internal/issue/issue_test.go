// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/fetch"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/namespace"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

func TestValues(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), len(issues))
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
		if strings.TrimSpace(string(v.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", v.Id())
		}
		if Get(v.Id()) != v {
			t.Errorf("Get(%d) does not return the listed issue", v.Id())
		}
	}
	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

// Render replaces the package-level renderer, so its tests do not run in parallel.
func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()

	var gotStyle string
	render = func(in, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	i := &Issue{id: 99, mdMsg: "# Title", docLinks: []HttpLink{"https://docs.example.com"}}
	out, err := i.Render("")
	if err != nil {
		t.Fatal(err)
	}
	if gotStyle != "auto" {
		t.Errorf("style = %q, want auto", gotStyle)
	}
	if !strings.Contains(out, "## See also") || !strings.Contains(out, "<https://docs.example.com>") {
		t.Errorf("Render() = %q, want a see-also section", out)
	}

	out, _ = (&Issue{mdMsg: "plain"}).Render("dark")
	if out != "plain" || gotStyle != "dark" {
		t.Errorf("Render(dark) = %q with style %q", out, gotStyle)
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	t.Parallel()

	i := &Issue{docLinks: []HttpLink{"a"}, extLinks: []HttpLink{"b"}}
	i.DocLinks()[0] = "x"
	i.ExtLinks()[0] = "y"
	if i.docLinks[0] != "a" || i.extLinks[0] != "b" {
		t.Error("link accessors must return copies")
	}
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Id
	}{
		{"nil", nil, 0},
		{"unrelated", errors.New("boom"), 0},
		{"unknown module", &resolver.UnknownModuleError{Name: "nope"}, UnknownModuleId},
		{"no matching version", &resolver.NoMatchingVersionError{Name: "widget", Requested: "9"}, NoMatchingVersionId},
		{"timeout", &loader.FetchError{Name: "widget", Cause: loader.ErrLoadTimeout}, LoadTimeoutId},
		{"no final callback", loader.ErrNoFinalCallback, BurstOrderingId},
		{"burst in progress", fmt.Errorf("arm: %w", loader.ErrBurstInProgress), BurstOrderingId},
		{"namespace conflict", &namespace.PathConflictError{Path: "a.b.c", At: "a.b"}, NamespaceConflictId},
		{"invalid artifact", &loader.FetchError{Name: "widget", Cause: fmt.Errorf("%w: bad", fetch.ErrInvalidArtifact)}, ArtifactInvalidId},
		{"fetch failed", &loader.FetchError{Name: "widget", Cause: errors.New("connection refused")}, FetchFailedId},
		{"catalog", &catalog.DuplicateModuleError{Name: "widget"}, CatalogLoadFailedId},
		{
			"explicit issue wins",
			NewErrorContext().WithOperation("load configuration").WithIssue(ConfigLoadFailedId).
				Wrap(&resolver.UnknownModuleError{Name: "x"}).BuildError(),
			ConfigLoadFailedId,
		},
		{
			"actionable without issue",
			&ActionableError{Operation: "resolve module", Cause: &resolver.UnknownModuleError{Name: "x"}},
			UnknownModuleId,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromError(tt.err)
			switch {
			case tt.want == 0 && got != nil:
				t.Errorf("FromError() = issue %d, want nil", got.Id())
			case tt.want != 0 && (got == nil || got.Id() != tt.want):
				t.Errorf("FromError() = %v, want issue %d", got, tt.want)
			}
		})
	}
}
