// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// FormatText is the colored human-readable format.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt writes key=value records.
	FormatLogfmt Format = "logfmt"

	// DefaultLevel is used when Options.Level is empty.
	DefaultLevel = "info"
)

var (
	// ErrInvalidFormat is returned for an unknown Format.
	ErrInvalidFormat = errors.New("invalid log format")
	// ErrInvalidLevel is returned for an unknown level name.
	ErrInvalidLevel = errors.New("invalid log level")
)

type (
	// Format selects how records are rendered.
	Format string

	// Options configures New. Zero fields take defaults.
	Options struct {
		// Level is one of debug, info, warn or error.
		Level string
		// Format defaults to FormatText.
		Format Format
		// Prefix is printed before every message.
		Prefix string
		// Timestamps adds the record time to each line.
		Timestamps bool
	}

	ctxKey struct{}
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatLogfmt}
}

// Validate reports whether f is a supported format. The empty format is valid.
func (f Format) Validate() error {
	switch f {
	case "", FormatText, FormatJSON, FormatLogfmt:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected text, json or logfmt)", ErrInvalidFormat, string(f))
	}
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	l, err := log.ParseLevel(strings.ToLower(s))
	if err != nil || l == log.FatalLevel {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return slog.Level(l), nil
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Formatter:       opts.Format.formatter(),
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
