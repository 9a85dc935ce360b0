// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultHTTPTimeout bounds a single artifact download.
	DefaultHTTPTimeout = 15 * time.Second
	// DefaultMaxBytes bounds the size of a single artifact (5MB).
	DefaultMaxBytes int64 = 5 * 1024 * 1024
)

type (
	// Transport retrieves the raw bytes behind a URL.
	Transport interface {
		Get(ctx context.Context, rawURL string) ([]byte, error)
	}

	// HTTPTransport downloads artifacts over http and https.
	HTTPTransport struct {
		Client   *http.Client
		MaxBytes int64
	}

	// FileTransport reads artifacts from file:// URLs or plain paths.
	FileTransport struct {
		MaxBytes int64
	}
)

// NewHTTPTransport returns an HTTPTransport with the given timeout and size
// limit. Zero values select the defaults.
func NewHTTPTransport(timeout time.Duration, maxBytes int64) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPTransport{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Get downloads rawURL. Any status other than 200 is an *HTTPStatusError.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return readLimited(resp.Body, limitOrDefault(t.MaxBytes), rawURL)
}

// Get reads the file named by rawURL.
func (t *FileTransport) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, limitOrDefault(t.MaxBytes), rawURL)
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrArtifactTooLarge, name, limit)
	}
	return data, nil
}

func limitOrDefault(n int64) int64 {
	if n <= 0 {
		return DefaultMaxBytes
	}
	return n
}
