// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHTTPTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	tr := NewHTTPTransport(0, 32)

	data, err := tr.Get(t.Context(), srv.URL+"/ok")
	if err != nil || string(data) != "payload" {
		t.Errorf("Get(/ok) = %q, %v", data, err)
	}

	_, err = tr.Get(t.Context(), srv.URL+"/missing")
	var status *HTTPStatusError
	if !errors.As(err, &status) || status.StatusCode != http.StatusNotFound {
		t.Errorf("Get(/missing) error = %v, want 404 *HTTPStatusError", err)
	}
	if !errors.Is(err, ErrHTTPStatus) {
		t.Error("status error should wrap ErrHTTPStatus")
	}

	if _, err := tr.Get(t.Context(), srv.URL+"/big"); !errors.Is(err, ErrArtifactTooLarge) {
		t.Errorf("Get(/big) error = %v, want ErrArtifactTooLarge", err)
	}
}

func TestFileTransport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "widget.cue")
	if err := os.WriteFile(path, []byte("module: \"widget\""), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := &FileTransport{}
	for _, u := range []string{path, "file://" + filepath.ToSlash(path)} {
		data, err := tr.Get(t.Context(), u)
		if err != nil || !strings.Contains(string(data), "widget") {
			t.Errorf("Get(%s) = %q, %v", u, data, err)
		}
	}

	if _, err := tr.Get(t.Context(), filepath.Join(dir, "missing.cue")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Get(missing) error = %v, want os.ErrNotExist", err)
	}

	small := &FileTransport{MaxBytes: 4}
	if _, err := small.Get(t.Context(), path); !errors.Is(err, ErrArtifactTooLarge) {
		t.Errorf("Get() over limit error = %v, want ErrArtifactTooLarge", err)
	}
}
