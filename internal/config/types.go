// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// LogLevelDebug enables dispatch and installer traces.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn shows warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError shows errors only.
	LogLevelError LogLevel = "error"

	// ColorAuto colors output when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidPrefix is returned when install.prefix is not absolute.
	ErrInvalidPrefix = errors.New("invalid install prefix")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is a charmbracelet/log level name.
	LogLevel string

	// ColorMode selects when the management CLI uses color.
	ColorMode string

	// InvalidValueError reports a field holding an unrecognized value.
	InvalidValueError struct {
		Field string
		Value string
		Err   error
	}

	// InvalidConfigError collects every field-level error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the effective shellbox configuration.
	Config struct {
		Log     LogConfig     `json:"log" mapstructure:"log"`
		Install InstallConfig `json:"install" mapstructure:"install"`
		Shell   ShellConfig   `json:"shell" mapstructure:"shell"`
		UI      UIConfig      `json:"ui" mapstructure:"ui"`
	}

	// LogConfig configures the diagnostic logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// InstallConfig holds installer defaults for --install.
	InstallConfig struct {
		// Prefix is prepended to every applet install location.
		Prefix string `json:"prefix" mapstructure:"prefix"`
		// Symlinks selects symbolic links instead of hard links.
		Symlinks bool `json:"symlinks" mapstructure:"symlinks"`
	}

	// ShellConfig configures the sh applet.
	ShellConfig struct {
		// PreferApplets runs commands that name an applet in-process
		// instead of searching PATH.
		PreferApplets bool `json:"prefer_applets" mapstructure:"prefer_applets"`
	}

	// UIConfig configures the management CLI.
	UIConfig struct {
		Color ColorMode `json:"color" mapstructure:"color"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: LogLevelInfo},
		Install: InstallConfig{Prefix: "/", Symlinks: true},
		Shell:   ShellConfig{PreferApplets: true},
		UI:      UIConfig{Color: ColorAuto},
	}
}

func (l LogLevel) String() string { return string(l) }

// Validate reports whether l is a known level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	}
	return &InvalidValueError{Field: "log.level", Value: string(l), Err: ErrInvalidLogLevel}
}

func (c ColorMode) String() string { return string(c) }

// Validate reports whether c is a known mode.
func (c ColorMode) Validate() error {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return &InvalidValueError{Field: "ui.color", Value: string(c), Err: ErrInvalidColorMode}
}

// Validate checks every field. The CUE schema covers files; this covers
// values set through the environment.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.Color.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !strings.HasPrefix(c.Install.Prefix, "/") {
		errs = append(errs, &InvalidValueError{Field: "install.prefix", Value: c.Install.Prefix, Err: ErrInvalidPrefix})
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Field, e.Err, e.Value)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
