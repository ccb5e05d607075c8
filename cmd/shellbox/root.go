// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/config"
	"github.com/shellbox/shellbox/internal/dispatch"
	"github.com/shellbox/shellbox/internal/issue"
	"github.com/shellbox/shellbox/internal/privilege"
	"github.com/shellbox/shellbox/internal/registry"
	"github.com/shellbox/shellbox/internal/usage"
	"github.com/shellbox/shellbox/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// app is the per-process state shared by the dispatcher hook and the
	// management commands.
	app struct {
		cfg      *config.Config
		cfgErr   error
		setID    bool
		logger   *log.Logger
		reg      *registry.Registry
		provider config.Provider
		loadOpts config.LoadOptions
	}

	// options are the process inputs tests replace.
	options struct {
		process    privilege.Process
		systemPath string
	}
)

// Execute runs the process invocation and exits with its status.
func Execute() {
	usage.Version = Version
	os.Exit(Main(context.Background(), os.Args))
}

// Main dispatches argv and returns the exit status. Streams and
// environment come from the applet.IO in ctx, or the process.
func Main(ctx context.Context, argv []string) int {
	return run(ctx, argv, options{})
}

func run(ctx context.Context, argv []string, opts options) int {
	proc := opts.process
	if proc == nil {
		proc = privilege.Current()
	}

	a := newApp(ctx, proc, opts.systemPath)
	d := &dispatch.Dispatcher{
		Registry:   a.reg,
		Process:    proc,
		Logger:     a.logger,
		Management: a.unprivileged(proc, a.manage),
	}
	status := types.FromStatus(d.Run(config.WithConfig(ctx, a.cfg), argv))
	if status.IsDispatchFailure() {
		a.logger.Debug("dispatch failed", "argv", argv, "status", status)
	}
	return int(status)
}

// unprivileged wraps a management handler so it runs with set-id privilege
// dropped, exactly like a SUIDDrop applet. A failed drop is fatal.
func (a *app) unprivileged(proc privilege.Process, next func(context.Context, []string) int) func(context.Context, []string) int {
	return func(ctx context.Context, argv []string) int {
		if err := privilege.Enforce(proc, applet.SUIDDrop); err != nil {
			a.logger.Error("privilege enforcement failed", "err", err)
			fmt.Fprintf(applet.IOFrom(ctx).Stderr, "%s: %v\n", dispatch.BaseName(argv[0]), err)
			return int(types.ExitFatal)
		}
		return next(ctx, argv)
	}
}

// newApp loads the configuration and builds the logger. A broken
// configuration is reported and replaced by the defaults so applets keep
// working.
func newApp(ctx context.Context, proc privilege.Process, systemPath string) *app {
	stdio := applet.IOFrom(ctx)

	a := &app{reg: registry.Default(), provider: config.NewProvider()}
	if creds, err := proc.Credentials(); err == nil {
		a.setID = creds.SetID()
	}

	a.loadOpts = config.LoadOptions{SystemPath: systemPath, SetID: a.setID}
	if !a.setID {
		a.loadOpts.ConfigFilePath, _ = stdio.LookupEnv(config.EnvFile)
	}
	a.cfg, a.cfgErr = a.provider.Load(ctx, a.loadOpts)
	if a.cfgErr != nil {
		a.cfg = config.DefaultConfig()
	}

	a.logger = log.NewWithOptions(stdio.Stderr, log.Options{Prefix: "shellbox"})
	if level, err := log.ParseLevel(a.cfg.Log.Level.String()); err == nil {
		a.logger.SetLevel(level)
	}
	if a.cfgErr != nil {
		a.logger.Warn(formatErrorForDisplay(a.cfgErr, a.cfg.Log.Level == config.LogLevelDebug))
	}
	return a
}

// versionString returns a formatted version string for display.
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
