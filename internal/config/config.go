// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/shellbox/shellbox/internal/cueutil"
	"github.com/shellbox/shellbox/internal/issue"
)

const (
	// SystemPath is the configuration file read by every invocation.
	SystemPath = "/etc/shellbox/config.cue"
	// EnvFile names an alternative configuration file.
	EnvFile = "SHELLBOX_CONFIG"
	// EnvPrefix prefixes per-key overrides such as SHELLBOX_LOG_LEVEL.
	EnvPrefix = "SHELLBOX"
)

//go:embed config_schema.cue
var configSchema string

// load builds a Config from defaults, the chosen file and, for trusted
// processes, the environment. It returns the file actually read, if any.
func load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("install.prefix", defaults.Install.Prefix)
	v.SetDefault("install.symlinks", defaults.Install.Symlinks)
	v.SetDefault("shell.prefer_applets", defaults.Shell.PreferApplets)
	v.SetDefault("ui.color", defaults.UI.Color)

	if !opts.SetID {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	path, explicit := opts.path()
	resolved := ""
	switch err := loadCUEIntoViper(v, path); {
	case err == nil:
		resolved = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No system file: defaults only.
	case errors.Is(err, fs.ErrNotExist):
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Unset " + EnvFile + " to use " + SystemPath).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	default:
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check that the file contains valid CUE syntax").
			WithSuggestion("Run 'shellbox --show-config' to see the accepted keys and defaults").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return &cfg, resolved, nil
}

// loadCUEIntoViper validates the file at path against #Config and merges its
// values into v. A missing file yields an error matching fs.ErrNotExist.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	value, err := cueutil.Compile(configSchema, data, path, "#Config")
	if err != nil {
		return err
	}

	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return cueutil.FormatError(err, path)
	}
	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg in the configuration file format.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder
	sb.WriteString("// shellbox configuration\n\n")
	fmt.Fprintf(&sb, "log: {\n\tlevel: %q\n}\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\ninstall: {\n\tprefix:   %q\n\tsymlinks: %v\n}\n", cfg.Install.Prefix, cfg.Install.Symlinks)
	fmt.Fprintf(&sb, "\nshell: {\n\tprefer_applets: %v\n}\n", cfg.Shell.PreferApplets)
	fmt.Fprintf(&sb, "\nui: {\n\tcolor: %q\n}\n", cfg.UI.Color)
	return sb.String()
}
