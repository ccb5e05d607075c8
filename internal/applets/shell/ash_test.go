// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/applettest"
	"github.com/shellbox/shellbox/internal/config"
)

// fakeHost resolves a fixed set of applets and records invocations.
type fakeHost struct {
	applets map[string]applet.Descriptor
	calls   []string
}

func (h *fakeHost) Resolve(name string) (applet.Descriptor, bool) {
	d, ok := h.applets[name]
	return d, ok
}

func (h *fakeHost) Invoke(ctx context.Context, d applet.Descriptor, args []string) int {
	h.calls = append(h.calls, d.Name)
	ctx = applet.WithDescriptor(ctx, d)
	argv := append([]string{d.Name}, args...)
	switch e := d.Entry.(type) {
	case applet.Main:
		return e(ctx, argv)
	case applet.NoReturn:
		e(ctx, argv)
		return 125
	}
	return 125
}

func newFakeHost() *fakeHost {
	upper := applet.Main(func(ctx context.Context, argv []string) int {
		stdio := applet.IOFrom(ctx)
		data, _ := io.ReadAll(stdio.Stdin)
		io.WriteString(stdio.Stdout, strings.ToUpper(string(data)))
		return 0
	})
	env := applet.Main(func(ctx context.Context, argv []string) int {
		stdio := applet.IOFrom(ctx)
		v, _ := stdio.LookupEnv(argv[1])
		io.WriteString(stdio.Stdout, v+"\n")
		return 0
	})
	quit := applet.NoReturn(func(ctx context.Context, argv []string) {
		applet.Exit(ctx, 4)
	})
	root := applet.Main(func(ctx context.Context, argv []string) int { return 0 })

	return &fakeHost{applets: map[string]applet.Descriptor{
		"upper":     {Name: "upper", Impl: "upper", Entry: upper, SUID: applet.SUIDDrop},
		"getenv":    {Name: "getenv", Impl: "getenv", Entry: env, SUID: applet.SUIDMaybe},
		"quit":      {Name: "quit", Impl: "quit", Entry: quit, SUID: applet.SUIDDrop},
		"needsroot": {Name: "needsroot", Impl: "needsroot", Entry: root, SUID: applet.SUIDRequire},
	}}
}

func withHost(h applet.Host) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context { return applet.WithHost(ctx, h) }
}

func TestAsh_Scripts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		argv       []string
		stdin      string
		wantOut    string
		wantCode   int
		wantStderr string
	}{
		{name: "command", argv: []string{"sh", "-c", "echo hi"}, wantOut: "hi\n"},
		{name: "exit status", argv: []string{"sh", "-c", "exit 3"}, wantCode: 3},
		{name: "arg0 and args", argv: []string{"sh", "-c", `echo "$0 $1 $#"`, "zero", "one"}, wantOut: "zero one 1\n"},
		{name: "stdin script", argv: []string{"sh"}, stdin: "echo from stdin\n", wantOut: "from stdin\n"},
		{name: "stdin with args", argv: []string{"sh", "-s", "a", "b"}, stdin: "echo $2\n", wantOut: "b\n"},
		{name: "errexit", argv: []string{"ash", "-ec", "false; echo unreachable"}, wantCode: 1},
		{name: "syntax error", argv: []string{"sh", "-c", "if then"}, wantCode: 2},
		{name: "missing -c argument", argv: []string{"sh", "-c"}, wantCode: 2, wantStderr: "sh: -c requires an argument\n"},
		{name: "bad option", argv: []string{"sh", "-Z"}, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := applettest.Run(t, applet.Main(Ash), applettest.Options{Stdin: tt.stdin}, tt.argv...)
			if res.Code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %q)", res.Code, tt.wantCode, res.Stderr)
			}
			if res.Stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", res.Stdout, tt.wantOut)
			}
			if tt.wantStderr != "" && res.Stderr != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", res.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestAsh_ScriptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	applettest.WriteFile(t, dir, "run.sh", "echo \"$0:$1\"\nexit 5\n")

	res := applettest.Run(t, applet.Main(Ash), applettest.Options{Dir: dir}, "sh", "run.sh", "arg")
	if res.Code != 5 {
		t.Errorf("exit = %d, want 5", res.Code)
	}
	if res.Stdout != "run.sh:arg\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestAsh_MissingScriptFile(t *testing.T) {
	t.Parallel()

	res := applettest.Main(t, Ash, "sh", "nope.sh")
	if res.Code != 2 {
		t.Errorf("exit = %d, want 2", res.Code)
	}
	if !strings.HasPrefix(res.Stderr, "sh: can't open 'nope.sh'") {
		t.Errorf("stderr = %q", res.Stderr)
	}
}

func TestAsh_AppletsRunInProcess(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	res := applettest.Run(t, applet.Main(Ash), applettest.Options{Context: withHost(host)},
		"sh", "-c", "printf 'abc' | upper; FOO=bar getenv FOO")
	if res.Code != 0 {
		t.Fatalf("exit = %d, stderr %q", res.Code, res.Stderr)
	}
	if res.Stdout != "ABCbar\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if len(host.calls) != 2 {
		t.Errorf("calls = %v", host.calls)
	}
}

func TestAsh_NestedShellSeesCallerEnvironment(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	host.applets["sh"] = applet.Descriptor{Name: "sh", Impl: "ash", Entry: applet.Main(Ash), SUID: applet.SUIDDrop}
	opts := applettest.Options{
		Env:     map[string]string{"OUTER": "out"},
		Context: withHost(host),
	}

	res := applettest.Run(t, applet.Main(Ash), opts,
		"sh", "-c", `FOO=bar sh -c 'echo "$FOO $OUTER"'; BAZ=1; export BAZ; sh -c 'echo "$BAZ$FOO"'`)
	if res.Code != 0 {
		t.Fatalf("exit = %d, stderr %q", res.Code, res.Stderr)
	}
	if res.Stdout != "bar out\n1\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "bar out\n1\n")
	}
	if len(host.calls) != 2 {
		t.Errorf("nested shells did not run in-process: %v", host.calls)
	}
}

func TestAsh_NoReturnAppletDoesNotEndShell(t *testing.T) {
	t.Parallel()

	res := applettest.Run(t, applet.Main(Ash), applettest.Options{Context: withHost(newFakeHost())},
		"sh", "-c", "quit; echo status $?")
	if res.Code != 0 {
		t.Fatalf("exit = %d, stderr %q", res.Code, res.Stderr)
	}
	if res.Stdout != "status 4\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestAsh_RequireAppletsAreExternal(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	res := applettest.Run(t, applet.Main(Ash), applettest.Options{Context: withHost(host)},
		"sh", "-c", "needsroot")
	if len(host.calls) != 0 {
		t.Errorf("REQUIRE applet ran in-process: %v", host.calls)
	}
	if res.Code != 127 {
		t.Errorf("exit = %d, want 127 from the external lookup", res.Code)
	}
}

func TestAsh_PreferAppletsDisabled(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	cfg := config.DefaultConfig()
	cfg.Shell.PreferApplets = false
	decorate := func(ctx context.Context) context.Context {
		return config.WithConfig(applet.WithHost(ctx, host), cfg)
	}

	res := applettest.Run(t, applet.Main(Ash), applettest.Options{Context: decorate}, "sh", "-c", "upper")
	if len(host.calls) != 0 {
		t.Errorf("applet ran in-process with prefer_applets off: %v", host.calls)
	}
	if res.Code != 127 {
		t.Errorf("exit = %d, want 127", res.Code)
	}
}

func TestRunScript_Environment(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	stdio := &applet.IO{Stdin: strings.NewReader(""), Stdout: &out, Stderr: io.Discard, Dir: t.TempDir()}

	if err := RunScript(t.Context(), stdio, `echo "$IFACE $PHASE"`, []string{"IFACE=eth0", "PHASE=up"}); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if out.String() != "eth0 up\n" {
		t.Errorf("stdout = %q", out.String())
	}

	err := RunScript(t.Context(), stdio, "exit 7", nil)
	if err == nil || err.Error() != "exit status 7" {
		t.Errorf("err = %v, want exit status 7", err)
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	inv, err := parseArgs("sh", []string{"-e", "+x", "-o", "pipefail", "-c", "true", "name", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if !inv.command || inv.script != "true" || inv.arg0 != "name" || len(inv.args) != 1 {
		t.Errorf("inv = %+v", inv)
	}
	want := []string{"-e", "+x", "-o", "pipefail"}
	if strings.Join(inv.setOptions, " ") != strings.Join(want, " ") {
		t.Errorf("setOptions = %v, want %v", inv.setOptions, want)
	}
}
