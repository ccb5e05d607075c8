// SPDX-License-Identifier: MPL-2.0

// Package applettest runs applet entry points in-process for tests.
package applettest

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/shellbox/shellbox/internal/applet"
)

type (
	// Result is the outcome of one invocation.
	Result struct {
		Stdout string
		Stderr string
		Code   int
	}

	// Options configure an invocation.
	Options struct {
		// Dir is the working directory. Empty means a fresh t.TempDir().
		Dir string
		// Stdin is the standard input.
		Stdin string
		// Env is the environment seen through LookupEnv and Environ.
		Env map[string]string
		// Usage is the usage text ShowUsage prints.
		Usage string
		// Context, when set, decorates the invocation context, for example
		// with applet.WithHost.
		Context func(context.Context) context.Context
	}
)

// Run invokes entry as argv[0] with argv[1:], capturing output and status.
// NoReturn entries are unwound through applet.Capture.
func Run(t *testing.T, entry applet.Entrypoint, opts Options, argv ...string) Result {
	t.Helper()

	if len(argv) == 0 {
		t.Fatal("applettest.Run: argv must include the applet name")
	}
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}

	var stdout, stderr bytes.Buffer
	stdio := &applet.IO{
		Stdin:  strings.NewReader(opts.Stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Dir:    opts.Dir,
		LookupEnv: func(key string) (string, bool) {
			if opts.Env == nil {
				return os.LookupEnv(key)
			}
			v, ok := opts.Env[key]
			return v, ok
		},
		Environ: func() []string {
			if opts.Env == nil {
				return os.Environ()
			}
			env := make([]string, 0, len(opts.Env))
			for k, v := range opts.Env {
				env = append(env, k+"="+v)
			}
			return env
		},
	}

	ctx := applet.WithIO(t.Context(), stdio)
	ctx = applet.WithDescriptor(ctx, applet.Descriptor{Name: argv[0], Impl: argv[0], Entry: entry, Usage: opts.Usage})
	if opts.Context != nil {
		ctx = opts.Context(ctx)
	}

	code := applet.Capture(ctx, func(ctx context.Context) int {
		switch e := entry.(type) {
		case applet.Main:
			return e(ctx, argv)
		case applet.NoReturn:
			e(ctx, argv)
			t.Errorf("%s: no-return entry point returned", argv[0])
			return -1
		default:
			t.Fatalf("%s: unknown entry point %T", argv[0], entry)
			return -1
		}
	})

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}
}

// Main is a shorthand for Run with a Main entry point and default options.
func Main(t *testing.T, fn applet.Main, argv ...string) Result {
	t.Helper()
	return Run(t, fn, Options{}, argv...)
}

// WriteFile writes content to dir/name, failing the test on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := dir + string(os.PathSeparator) + name
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
