// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath is a user-chosen file (--config or SHELLBOX_CONFIG).
	// It is ignored when SetID is set.
	ConfigFilePath string
	// SystemPath overrides SystemPath when set.
	SystemPath string
	// SetID marks a set-uid/set-gid process: only the system file is read
	// and the environment is ignored.
	SetID bool
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider reading CUE files.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}
	cfg, _, err := load(opts)
	return cfg, err
}

// path returns the file to read and whether the user named it.
func (o LoadOptions) path() (string, bool) {
	if o.ConfigFilePath != "" && !o.SetID {
		return o.ConfigFilePath, true
	}
	if o.SystemPath != "" {
		return o.SystemPath, false
	}
	return SystemPath, false
}
