// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type (
	// IO is the execution environment of one applet invocation.
	IO struct {
		// Stdin is the input stream.
		Stdin io.Reader
		// Stdout is the output stream.
		Stdout io.Writer
		// Stderr is the error stream.
		Stderr io.Writer
		// Dir is the working directory. Empty means the process cwd.
		Dir string
		// LookupEnv retrieves environment variables.
		LookupEnv func(string) (string, bool)
		// Environ lists the environment as "key=value" pairs, for applets
		// that start other programs.
		Environ func() []string
	}

	ioKey         struct{}
	exitKey       struct{}
	descriptorKey struct{}
)

// ProcessIO returns the IO of the running process.
func ProcessIO() *IO {
	return &IO{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}

// WithIO stores stdio in the context.
func WithIO(ctx context.Context, stdio *IO) context.Context {
	return context.WithValue(ctx, ioKey{}, stdio)
}

// IOFrom returns the IO stored in ctx, or the process IO when none was set.
// Missing fields of a stored IO are filled from the process.
func IOFrom(ctx context.Context) *IO {
	v, ok := ctx.Value(ioKey{}).(*IO)
	if !ok || v == nil {
		return ProcessIO()
	}
	if v.Stdin != nil && v.Stdout != nil && v.Stderr != nil && v.LookupEnv != nil && v.Environ != nil {
		return v
	}
	out := *v
	if out.Stdin == nil {
		out.Stdin = os.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = os.Stderr
	}
	if out.LookupEnv == nil {
		out.LookupEnv = os.LookupEnv
	}
	if out.Environ == nil {
		out.Environ = os.Environ
	}
	return &out
}

// WithExit installs the process-termination hook used by Exit.
func WithExit(ctx context.Context, exit func(code int)) context.Context {
	return context.WithValue(ctx, exitKey{}, exit)
}

// Exit terminates the invocation with code through the hook installed by
// WithExit, or os.Exit when there is none. NoReturn entry points end with it.
func Exit(ctx context.Context, code int) {
	if exit, ok := ctx.Value(exitKey{}).(func(int)); ok && exit != nil {
		exit(code)
		// A hook that returns would let a NoReturn body continue.
		panic(fmt.Sprintf("applet: exit hook returned for status %d", code))
	}
	os.Exit(code)
}

// WithDescriptor records the running applet in the context.
func WithDescriptor(ctx context.Context, d Descriptor) context.Context {
	return context.WithValue(ctx, descriptorKey{}, d)
}

// DescriptorFrom returns the running applet, if the dispatcher recorded one.
func DescriptorFrom(ctx context.Context) (Descriptor, bool) {
	d, ok := ctx.Value(descriptorKey{}).(Descriptor)
	return d, ok
}

// Name returns the running applet name, falling back to fallback.
func Name(ctx context.Context, fallback string) string {
	if d, ok := DescriptorFrom(ctx); ok {
		return d.Name
	}
	return fallback
}

// ShowUsage prints the running applet's usage text to stderr and returns 1,
// the status busybox uses for usage errors.
func ShowUsage(ctx context.Context) int {
	stderr := IOFrom(ctx).Stderr
	d, ok := DescriptorFrom(ctx)
	if !ok {
		fmt.Fprintln(stderr, "usage: no help available")
		return 1
	}
	fmt.Fprintf(stderr, "Usage: %s %s\n", d.Name, d.Usage)
	return 1
}

// Errorf writes "name: message" to the invocation's stderr.
func Errorf(ctx context.Context, name, format string, args ...any) {
	fmt.Fprintf(IOFrom(ctx).Stderr, "%s: %s\n", name, fmt.Sprintf(format, args...))
}

// Path resolves p against the invocation's working directory.
func Path(ctx context.Context, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	dir := IOFrom(ctx).Dir
	if dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

// exitSignal carries a status out of an entry point run under Capture.
type exitSignal struct{ code int }

// Capture runs fn with an exit hook that unwinds back to Capture instead of
// terminating the process, and returns the status passed to Exit or the
// one fn returned. Panics other than the exit unwind are re-raised.
func Capture(ctx context.Context, fn func(ctx context.Context) int) (status int) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			status = sig.code
		}
	}()
	return fn(WithExit(ctx, func(code int) { panic(exitSignal{code: code}) }))
}
