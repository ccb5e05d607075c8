// SPDX-License-Identifier: MPL-2.0

package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/dispatch"
	"github.com/shellbox/shellbox/internal/privilege"
	"github.com/shellbox/shellbox/internal/privilege/privilegetest"
	"github.com/shellbox/shellbox/internal/registry"
	"github.com/shellbox/shellbox/pkg/types"
)

// recorder collects the argv of every entry-point call.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(argv []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string(nil), argv...))
}

func (r *recorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fixture struct {
	rec    *recorder
	proc   *privilegetest.Process
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	d      *dispatch.Dispatcher

	// observed holds the credentials the "whoami" entry saw through
	// privilege.FromContext.
	observed privilege.Credentials
}

func newFixture(t *testing.T, creds privilege.Credentials) *fixture {
	t.Helper()

	f := &fixture{
		rec:    &recorder{},
		proc:   privilegetest.New(creds),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	echo := applet.Main(func(ctx context.Context, argv []string) int {
		f.rec.record(argv)
		_, _ = applet.IOFrom(ctx).Stdout.Write([]byte(strings.Join(argv[1:], " ") + "\n"))
		return 0
	})
	ifupdown := applet.Main(func(_ context.Context, argv []string) int {
		f.rec.record(argv)
		return 0
	})
	status := applet.Main(func(_ context.Context, argv []string) int {
		f.rec.record(argv)
		return 300
	})
	whoami := applet.Main(func(ctx context.Context, argv []string) int {
		f.rec.record(argv)
		if privilege.FromContext(ctx) != privilege.Process(f.proc) {
			return 97
		}
		f.observed, _ = privilege.FromContext(ctx).Credentials()
		return 0
	})
	exit := applet.NoReturn(func(ctx context.Context, argv []string) {
		f.rec.record(argv)
		applet.Exit(ctx, 3)
	})
	broken := applet.NoReturn(func(_ context.Context, argv []string) {
		f.rec.record(argv)
	})
	nested := applet.Main(func(ctx context.Context, argv []string) int {
		f.rec.record(argv)
		host, ok := applet.HostFrom(ctx)
		if !ok {
			return 99
		}
		desc, ok := host.Resolve("echo")
		if !ok {
			return 98
		}
		return host.Invoke(ctx, desc, argv[1:])
	})

	reg, err := registry.New([]applet.Descriptor{
		{Name: "broken", Impl: "broken", Entry: broken},
		{Name: "crontab", Impl: "crontab", Entry: echo, Location: applet.DirUsrBin, SUID: applet.SUIDRequire},
		{Name: "echo", Impl: "echo", Entry: echo, Location: applet.DirBin},
		{Name: "exit", Impl: "exit", Entry: exit},
		{Name: "ifdown", Impl: "ifupdown", Entry: ifupdown, Location: applet.DirSbin},
		{Name: "ifup", Impl: "ifupdown", Entry: ifupdown, Location: applet.DirSbin},
		{Name: "nested", Impl: "nested", Entry: nested},
		{Name: "ping", Impl: "ping", Entry: whoami, SUID: applet.SUIDMaybe},
		{Name: "status", Impl: "status", Entry: status},
		{Name: "whoami", Impl: "whoami", Entry: whoami},
	})
	require.NoError(t, err)

	f.d = &dispatch.Dispatcher{
		Registry: reg,
		Process:  f.proc,
		Stdio:    &applet.IO{Stdin: strings.NewReader(""), Stdout: f.stdout, Stderr: f.stderr},
	}
	return f
}

func (f *fixture) run(argv ...string) int {
	return applet.Capture(context.Background(), func(ctx context.Context) int {
		return f.d.Run(ctx, argv)
	})
}

func TestRun_EchoByArgv0(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("echo", "hello")

	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", f.stdout.String())
	assert.Equal(t, [][]string{{"echo", "hello"}}, f.rec.Calls())
	assert.Empty(t, f.stderr.String())
}

func TestRun_FirstArgumentFallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("/bin/busybox", "echo", "a", "b")

	assert.Equal(t, 0, code)
	assert.Equal(t, [][]string{{"echo", "a", "b"}}, f.rec.Calls())
}

func TestRun_UnknownApplet(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("busybox", "nosuchcmd")

	assert.Equal(t, int(types.ExitNotFound), code)
	assert.Empty(t, f.rec.Calls(), "no entry point may run")
	assert.True(t, strings.HasPrefix(f.stderr.String(), "nosuchcmd: applet not found\n"), f.stderr.String())
}

func TestRun_UnknownAppletSuggestion(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("busybox", "ecgo")

	assert.Equal(t, int(types.ExitNotFound), code)
	assert.Contains(t, f.stderr.String(), "did you mean: echo?")
}

func TestRun_SharedImplementation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	require.Equal(t, 0, f.run("ifup", "eth0"))
	require.Equal(t, 0, f.run("busybox", "ifdown", "eth0"))

	assert.Equal(t, [][]string{{"ifup", "eth0"}, {"ifdown", "eth0"}}, f.rec.Calls())
}

func TestRun_RequireDenied(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("crontab", "-l")

	assert.Equal(t, int(types.ExitDenied), code)
	assert.Empty(t, f.rec.Calls(), "denied applet must not run")
	assert.Equal(t, "crontab: must be suid to work properly\n", f.stderr.String())
}

func TestRun_RequireAllowed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.SetUIDRoot(1000, 1000))
	code := f.run("crontab", "-l")

	assert.Equal(t, 0, code)
	assert.Len(t, f.rec.Calls(), 1)
	creds, err := f.proc.Credentials()
	require.NoError(t, err)
	assert.True(t, creds.Elevated(), "require must not drop privileges")
}

func TestRun_DropBeforeEntry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.SetUIDRoot(1000, 100))
	code := f.run("whoami")

	require.Equal(t, 0, code)
	assert.False(t, f.observed.Elevated(), "entry point saw root")
	assert.Equal(t, 1000, f.observed.EUID)
	assert.Equal(t, 100, f.observed.EGID)
	assert.Equal(t, 1, f.proc.Drops())
}

func TestRun_MaybeKeepsCredentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.SetUIDRoot(1000, 100))
	require.Equal(t, 0, f.run("ping"))

	assert.True(t, f.observed.Elevated())
	assert.Zero(t, f.proc.Drops())
}

func TestRun_DropFailureIsFatal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.SetUIDRoot(1000, 100))
	f.proc.DropErr = errors.New("setresuid(1000): operation not permitted")
	code := f.run("whoami")

	assert.Equal(t, int(types.ExitFatal), code)
	assert.Empty(t, f.rec.Calls())
	assert.Equal(t, "whoami: can't drop privileges: setresuid(1000): operation not permitted\n", f.stderr.String())
}

func TestRun_NoReturnExit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("exit", "x")

	assert.Equal(t, 3, code)
	assert.Equal(t, [][]string{{"exit", "x"}}, f.rec.Calls())
}

func TestRun_NoReturnThatReturns(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("broken")

	assert.Equal(t, int(types.ExitFatal), code)
	assert.Equal(t, "broken: "+dispatch.MsgReturned+"\n", f.stderr.String())
}

func TestRun_StatusMasked(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	assert.Equal(t, 300&0xff, f.run("status"))
}

func TestRun_Management(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	var got []string
	f.d.Management = func(_ context.Context, argv []string) int {
		got = argv
		return 4
	}

	assert.Equal(t, 4, f.run("shellbox", "--list"))
	assert.Equal(t, []string{"shellbox", "--list"}, got)
	assert.Empty(t, f.rec.Calls())
}

func TestRun_ManagementUnsetIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	assert.Equal(t, int(types.ExitNotFound), f.run("shellbox", "--list"))
	assert.Equal(t, "shellbox: applet not found\n", f.stderr.String())
}

func TestInvoke_HostInContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t, privilegetest.User(1000, 1000))
	code := f.run("nested", "deep")

	assert.Equal(t, 0, code)
	assert.Equal(t, [][]string{{"nested", "deep"}, {"echo", "deep"}}, f.rec.Calls())
	assert.Equal(t, "deep\n", f.stdout.String())
}

func TestRun_DefaultRegistryEcho(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	d := &dispatch.Dispatcher{
		Registry: registry.Default(),
		Process:  privilegetest.New(privilegetest.User(1000, 1000)),
		Stdio:    &applet.IO{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr},
	}
	code := applet.Capture(context.Background(), func(ctx context.Context) int {
		return d.Run(ctx, []string{"echo", "hello"})
	})

	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", stdout.String())
}
