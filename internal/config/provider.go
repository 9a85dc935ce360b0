// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/internal/logging"
)

type (
	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath names the file to read. It must exist when set.
		ConfigFilePath string
		// ConfigDirPath replaces ConfigDir() when looking for config.cue.
		ConfigDirPath string
	}

	// Provider yields the effective configuration for a command.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// fileProvider layers defaults, MODLOAD_* variables and the CUE file.
	fileProvider struct{}

	// staticProvider always returns a copy of one Config.
	staticProvider struct {
		cfg Config
	}
)

// NewProvider returns the provider backed by the config file and environment.
func NewProvider() Provider {
	return fileProvider{}
}

// Static returns a provider that ignores its options and serves a copy of cfg.
func Static(cfg *Config) Provider {
	return staticProvider{cfg: *cfg}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	if path == "" {
		logger.Debug("no config file found, using defaults")
	} else {
		logger.Debug("config loaded", "path", path)
	}
	return cfg, nil
}

func (p staticProvider) Load(context.Context, LoadOptions) (*Config, error) {
	cfg := p.cfg
	return &cfg, nil
}
