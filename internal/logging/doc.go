// SPDX-License-Identifier: MPL-2.0

// Package logging builds the slog loggers used across modload. Records are
// rendered by a charmbracelet/log handler in text, JSON or logfmt form.
package logging
