// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

const (
	// DefaultReleaseLocation is where released artifacts are fetched from
	// when no location is configured. It matches `modload serve` defaults.
	DefaultReleaseLocation = "http://localhost:8080/release"
	// DefaultDevelopmentLocation is the development tree counterpart.
	DefaultDevelopmentLocation = "http://localhost:8080/dev"
	// DefaultLoaderTimeout bounds a single module load.
	DefaultLoaderTimeout = 30 * time.Second
	// DefaultHTTPTimeout bounds a single artifact download.
	DefaultHTTPTimeout = 15 * time.Second
	// DefaultMaxBytes caps artifact size.
	DefaultMaxBytes int64 = 5 << 20
)

var (
	// ErrInvalidLocations is the sentinel error wrapped by InvalidLocationsError.
	ErrInvalidLocations = errors.New("invalid locations config")
	// ErrInvalidHTTPConfig is returned when HTTP limits are not positive.
	ErrInvalidHTTPConfig = errors.New("invalid http config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CatalogConfig points at the module catalog. An empty Path selects the
	// catalog embedded in the binary.
	CatalogConfig struct {
		Path string `json:"path" mapstructure:"path"`
	}

	// LocationsConfig holds the artifact base locations handed to the resolver.
	LocationsConfig struct {
		Release     string `json:"release" mapstructure:"release"`
		Development string `json:"development" mapstructure:"development"`
		// Extension defaults to ".cue"; ".sh" selects shell artifacts.
		Extension string `json:"extension" mapstructure:"extension"`
	}

	// LoaderConfig tunes the load coordinator. A negative Timeout disables
	// per-module timeouts.
	LoaderConfig struct {
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// HTTPConfig bounds artifact downloads.
	HTTPConfig struct {
		Timeout  time.Duration `json:"timeout" mapstructure:"timeout"`
		MaxBytes int64         `json:"max_bytes" mapstructure:"max_bytes"`
	}

	// LogConfig selects the log level and output format.
	LogConfig struct {
		Level  string         `json:"level" mapstructure:"level"`
		Format logging.Format `json:"format" mapstructure:"format"`
	}

	// Config is the complete modload configuration.
	Config struct {
		Catalog   CatalogConfig   `json:"catalog" mapstructure:"catalog"`
		Locations LocationsConfig `json:"locations" mapstructure:"locations"`
		Loader    LoaderConfig    `json:"loader" mapstructure:"loader"`
		HTTP      HTTPConfig      `json:"http" mapstructure:"http"`
		Log       LogConfig       `json:"log" mapstructure:"log"`
	}

	// InvalidLocationsError is returned when a location is empty or the
	// extension does not start with a dot.
	InvalidLocationsError struct {
		Field string
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidLocationsError) Error() string {
	return fmt.Sprintf("invalid locations.%s %q", e.Field, e.Value)
}

// Unwrap returns ErrInvalidLocations for errors.Is() compatibility.
func (e *InvalidLocationsError) Unwrap() error { return ErrInvalidLocations }

// Validate checks that both locations are set and the extension is dotted.
func (c LocationsConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Release) == "" {
		errs = append(errs, &InvalidLocationsError{Field: "release", Value: c.Release})
	}
	if strings.TrimSpace(c.Development) == "" {
		errs = append(errs, &InvalidLocationsError{Field: "development", Value: c.Development})
	}
	if c.Extension != "" && (!strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2) {
		errs = append(errs, &InvalidLocationsError{Field: "extension", Value: c.Extension})
	}
	return errors.Join(errs...)
}

// Resolver converts the section into resolver locations.
func (c LocationsConfig) Resolver() resolver.Locations {
	return resolver.Locations{Release: c.Release, Development: c.Development, Extension: c.Extension}
}

// Validate checks that the HTTP limits are positive.
func (c HTTPConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidHTTPConfig, c.Timeout)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("%w: max_bytes must be positive, got %d", ErrInvalidHTTPConfig, c.MaxBytes)
	}
	return nil
}

// Validate checks the level and format names.
func (c LogConfig) Validate() error {
	if _, err := logging.ParseLevel(c.Level); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Validate returns an *InvalidConfigError listing every invalid field.
func (c Config) Validate() error {
	var errs []error
	for _, err := range []error{c.Locations.Validate(), c.HTTP.Validate(), c.Log.Validate()} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel and the field errors so errors.Is matches both.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{Path: ""}, // embedded catalog
		Locations: LocationsConfig{
			Release:     DefaultReleaseLocation,
			Development: DefaultDevelopmentLocation,
			Extension:   resolver.DefaultExtension,
		},
		Loader: LoaderConfig{Timeout: DefaultLoaderTimeout},
		HTTP: HTTPConfig{
			Timeout:  DefaultHTTPTimeout,
			MaxBytes: DefaultMaxBytes,
		},
		Log: LogConfig{
			Level:  logging.DefaultLevel,
			Format: logging.FormatText,
		},
	}
}
