// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/privilege"
	"github.com/shellbox/shellbox/pkg/types"
)

// Fixed diagnostics. Each is printed as "<name>: <message>".
const (
	MsgNotFound = "applet not found"
	MsgDenied   = "must be suid to work properly"
	MsgReturned = "entry point returned from a no-return call"
)

type (
	// Dispatcher runs applets from a Resolver under their privilege policy.
	// The zero value is not usable; Registry must be set.
	Dispatcher struct {
		// Registry resolves applet names. If it also has a
		// Suggest(string) []string method, unknown names get a hint.
		Registry Resolver
		// Process is the credential state policies act on. Nil means
		// privilege.Current().
		Process privilege.Process
		// Logger receives debug traces. Nil discards them.
		Logger *log.Logger
		// Stdio overrides the invocation streams. Nil keeps whatever the
		// context carries, or the process streams.
		Stdio *applet.IO
		// Management handles unresolved invocations under a generic name
		// that start with a flag, with the full argv. Nil treats them as
		// unknown applets.
		Management func(ctx context.Context, argv []string) int
	}

	suggester interface {
		Suggest(name string) []string
	}
)

var _ applet.Host = (*Dispatcher)(nil)

// Resolve implements applet.Host.
func (d *Dispatcher) Resolve(name string) (applet.Descriptor, bool) {
	return d.Registry.Resolve(name)
}

// Run dispatches a whole process invocation and returns the exit status.
func (d *Dispatcher) Run(ctx context.Context, argv []string) int {
	if d.Stdio != nil {
		ctx = applet.WithIO(ctx, d.Stdio)
	}
	logger := d.logger()

	inv := ParseInvocation(argv, d.Registry)
	logger.Debug("parsed invocation", "name", inv.Name, "found", inv.Found, "generic", inv.Generic, "args", len(inv.Args))

	switch {
	case inv.Found:
		return int(types.FromStatus(d.Invoke(ctx, inv.Applet, inv.Args)))
	case inv.Management && d.Management != nil:
		return d.Management(ctx, argv)
	default:
		return d.notFound(ctx, inv.Name)
	}
}

// Invoke runs desc with args, which exclude the applet name. It implements
// applet.Host so applets such as the shell can start other applets
// in-process through the same policy checks.
func (d *Dispatcher) Invoke(ctx context.Context, desc applet.Descriptor, args []string) int {
	logger := d.logger().With("applet", desc.Name)
	stderr := applet.IOFrom(ctx).Stderr

	if err := privilege.Enforce(d.process(), desc.SUID); err != nil {
		switch {
		case errors.Is(err, privilege.ErrSUIDRequired):
			logger.Debug("denied", "policy", desc.SUID)
			fmt.Fprintf(stderr, "%s: %s\n", desc.Name, MsgDenied)
			return int(types.ExitDenied)
		default:
			logger.Error("privilege enforcement failed", "policy", desc.SUID, "err", err)
			fmt.Fprintf(stderr, "%s: %v\n", desc.Name, err)
			return int(types.ExitFatal)
		}
	}
	logger.Debug("authorized", "policy", desc.SUID, "impl", desc.Impl)

	argv := make([]string, 0, len(args)+1)
	argv = append(argv, desc.Name)
	argv = append(argv, args...)

	ctx = applet.WithDescriptor(ctx, desc)
	ctx = applet.WithHost(ctx, d)
	ctx = privilege.WithProcess(ctx, d.process())

	switch entry := desc.Entry.(type) {
	case applet.Main:
		status := entry(ctx, argv)
		logger.Debug("terminated", "status", status)
		return status
	case applet.NoReturn:
		entry(ctx, argv)
		logger.Error("no-return entry point returned")
		fmt.Fprintf(stderr, "%s: %s\n", desc.Name, MsgReturned)
		applet.Exit(ctx, int(types.ExitFatal))
		return int(types.ExitFatal)
	default:
		// Unreachable for registries built with registry.New.
		fmt.Fprintf(stderr, "%s: no entry point\n", desc.Name)
		return int(types.ExitFatal)
	}
}

func (d *Dispatcher) notFound(ctx context.Context, name string) int {
	if name == "" {
		name = genericNames[1]
	}
	stderr := applet.IOFrom(ctx).Stderr
	fmt.Fprintf(stderr, "%s: %s\n", name, MsgNotFound)
	if s, ok := d.Registry.(suggester); ok {
		if alts := s.Suggest(name); len(alts) > 0 {
			fmt.Fprintf(stderr, "did you mean: %s?\n", strings.Join(alts, ", "))
		}
	}
	d.logger().Debug("not found", "name", name)
	return int(types.ExitNotFound)
}

func (d *Dispatcher) process() privilege.Process {
	if d.Process != nil {
		return d.Process
	}
	return privilege.Current()
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return discard
}

var discard = log.New(io.Discard)
