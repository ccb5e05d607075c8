// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"

	"github.com/shellbox/shellbox/internal/applet"
)

// execHandler runs applets in-process and hands everything else to next.
// A name containing a slash is always external.
func (s *session) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if d, ok := s.lookup(args[0]); ok {
			return s.invoke(ctx, d, args)
		}
		return next(ctx, args)
	}
}

// lookup reports whether name runs in-process. REQUIRE applets need the
// set-uid bit of their own executable, so they are left to next.
func (s *session) lookup(name string) (applet.Descriptor, bool) {
	if s.host == nil || !s.preferApplets || strings.Contains(name, "/") {
		return applet.Descriptor{}, false
	}
	d, ok := s.host.Resolve(name)
	if !ok || d.SUID == applet.SUIDRequire {
		return applet.Descriptor{}, false
	}
	return d, true
}

// invoke runs d with the redirections and environment of the current
// command. Exit from a NoReturn applet unwinds to here and does not end
// the shell.
func (s *session) invoke(ctx context.Context, d applet.Descriptor, args []string) error {
	hc := interp.HandlerCtx(ctx)
	stdio := &applet.IO{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
		LookupEnv: func(name string) (string, bool) {
			v := hc.Env.Get(name)
			return v.Str, v.Set
		},
		Environ: func() []string { return exported(hc.Env) },
	}
	if stdio.Stdin == nil {
		stdio.Stdin = strings.NewReader("")
	}

	status := applet.Capture(applet.WithIO(ctx, stdio), func(ctx context.Context) int {
		return s.host.Invoke(ctx, d, args[1:])
	})
	if status&0xff == 0 {
		return nil
	}
	return interp.ExitStatus(uint8(status))
}

// exported lists the exported string variables of env as "key=value".
func exported(env expand.Environ) []string {
	var list []string
	env.Each(func(name string, vr expand.Variable) bool {
		if vr.Exported && vr.Kind == expand.String {
			list = append(list, name+"="+vr.Str)
		}
		return true
	})
	return list
}
