// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "load catalog"}, "failed to load catalog"},
		{
			"with resource",
			&ActionableError{Operation: "load catalog", Resource: "./catalog.cue"},
			"failed to load catalog: ./catalog.cue",
		},
		{
			"with cause",
			&ActionableError{Operation: "resolve module", Cause: errors.New("unknown module widget")},
			"failed to resolve module: unknown module widget",
		},
		{
			"everything",
			&ActionableError{Operation: "load catalog", Resource: "./catalog.cue", Cause: errors.New("file not found")},
			"failed to load catalog: ./catalog.cue: file not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &ActionableError{Operation: "fetch module", Resource: "https://modules.example.com/widget", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("load catalog").
		WithResource("./catalog.cue").
		WithSuggestion("Pass --catalog").
		WithSuggestionf("Check permissions on %s", "./catalog.cue").
		Wrap(errors.Join(inner)).
		Build()

	brief := err.Format(false)
	for _, want := range []string{"failed to load catalog", "• Pass --catalog", "• Check permissions on ./catalog.cue"} {
		if !strings.Contains(brief, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, brief)
		}
	}
	if strings.Contains(brief, "Error chain") {
		t.Error("Format(false) should not print the error chain")
	}
	if verbose := err.Format(true); !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. no such file") {
		t.Errorf("Format(true) missing the error chain:\n%s", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without an operation should return a nil error")
	}

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Run 'modload config init'").
		WithIssue(ConfigLoadFailedId).
		Wrap(cause).
		Build()
	if err.Operation != "load configuration" || err.Issue != ConfigLoadFailedId || len(err.Suggestions) != 1 {
		t.Errorf("Build() = %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("built error should wrap its cause")
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("fetch module").WithResource("widget")
	err1 := ctx.Wrap(errors.New("error 1")).Build()
	err2 := ctx.Wrap(errors.New("error 2")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("reused context should allow different causes")
	}
	if err1.Operation != err2.Operation {
		t.Error("reused context should preserve the operation")
	}
}
