// SPDX-License-Identifier: MPL-2.0

package artifactserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

type (
	// Config holds the server settings.
	Config struct {
		// Addr is the listen address (default ":8080").
		Addr string
		// ReleaseDir is served under /release.
		ReleaseDir string
		// DevelopmentDir is served under /dev.
		DevelopmentDir string
		// ShutdownTimeout bounds graceful shutdown (default 10s).
		ShutdownTimeout time.Duration
		Logger          *slog.Logger
	}

	// Server serves module artifacts until its context is cancelled.
	Server struct {
		cfg  Config
		http *http.Server
	}
)

// New creates a server; call Run or Serve to start it.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(cfg.ReleaseDir, cfg.DevelopmentDir, cfg.Logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("artifact server started",
			"addr", ln.Addr().String(), "release", s.cfg.ReleaseDir, "dev", s.cfg.DevelopmentDir)
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.cfg.Logger.Info("artifact server stopping")
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("artifact server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("artifact server shutdown: %w", err)
	}
	return nil
}
