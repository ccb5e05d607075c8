// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIOFrom_DefaultsToProcess(t *testing.T) {
	t.Parallel()

	got := IOFrom(context.Background())
	if got.Stdin != os.Stdin || got.Stdout != os.Stdout || got.Stderr != os.Stderr {
		t.Error("IOFrom without WithIO did not return process streams")
	}
}

func TestIOFrom_FillsMissingFields(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ctx := WithIO(context.Background(), &IO{Stdout: &out, Dir: "/tmp"})

	got := IOFrom(ctx)
	if got.Stdout != &out {
		t.Error("stored Stdout was replaced")
	}
	if got.Stderr != os.Stderr || got.Stdin != os.Stdin || got.LookupEnv == nil {
		t.Error("missing fields were not filled from the process")
	}
	if got.Dir != "/tmp" {
		t.Errorf("Dir = %q, want /tmp", got.Dir)
	}
}

func TestExit_UsesHook(t *testing.T) {
	t.Parallel()

	type unwind struct{ code int }

	ctx := WithExit(context.Background(), func(code int) { panic(unwind{code}) })

	defer func() {
		r := recover()
		u, ok := r.(unwind)
		if !ok {
			t.Fatalf("recover() = %v, want unwind", r)
		}
		if u.code != 3 {
			t.Errorf("exit code = %d, want 3", u.code)
		}
	}()
	Exit(ctx, 3)
	t.Fatal("Exit returned")
}

func TestExit_HookThatReturnsPanics(t *testing.T) {
	t.Parallel()

	var got int
	ctx := WithExit(context.Background(), func(code int) { got = code })

	defer func() {
		if recover() == nil {
			t.Fatal("Exit with a returning hook did not panic")
		}
		if got != 7 {
			t.Errorf("hook saw %d, want 7", got)
		}
	}()
	Exit(ctx, 7)
}

func TestShowUsage(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	ctx := WithIO(context.Background(), &IO{Stderr: &stderr})
	ctx = WithDescriptor(ctx, Descriptor{Name: "echo", Usage: "[-n] [ARG]..."})

	if code := ShowUsage(ctx); code != 1 {
		t.Errorf("ShowUsage() = %d, want 1", code)
	}
	if got := stderr.String(); got != "Usage: echo [-n] [ARG]...\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestErrorf(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	ctx := WithIO(context.Background(), &IO{Stderr: &stderr})
	Errorf(ctx, "cat", "can't open '%s'", "nope")

	if got := strings.TrimSpace(stderr.String()); got != "cat: can't open 'nope'" {
		t.Errorf("stderr = %q", got)
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	if got := Name(context.Background(), "fallback"); got != "fallback" {
		t.Errorf("Name() without descriptor = %q", got)
	}
	ctx := WithDescriptor(context.Background(), Descriptor{Name: "ifdown"})
	if got := Name(ctx, "ifup"); got != "ifdown" {
		t.Errorf("Name() = %q, want ifdown", got)
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := WithIO(context.Background(), &IO{Dir: dir})

	if got := Path(ctx, "a/b"); got != filepath.Join(dir, "a/b") {
		t.Errorf("Path(relative) = %q", got)
	}
	if got := Path(ctx, "/etc/passwd"); got != "/etc/passwd" {
		t.Errorf("Path(absolute) = %q", got)
	}
	if got := Path(context.Background(), "x"); got != "x" {
		t.Errorf("Path without Dir = %q", got)
	}
}

func TestCapture(t *testing.T) {
	t.Parallel()

	t.Run("returned status", func(t *testing.T) {
		t.Parallel()
		got := Capture(context.Background(), func(context.Context) int { return 3 })
		if got != 3 {
			t.Errorf("Capture() = %d, want 3", got)
		}
	})

	t.Run("exit unwinds", func(t *testing.T) {
		t.Parallel()
		reached := false
		got := Capture(context.Background(), func(ctx context.Context) int {
			Exit(ctx, 7)
			reached = true
			return 0
		})
		if got != 7 {
			t.Errorf("Capture() = %d, want 7", got)
		}
		if reached {
			t.Error("code after Exit ran")
		}
	})

	t.Run("other panics propagate", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recovered %v, want boom", r)
			}
		}()
		Capture(context.Background(), func(context.Context) int { panic("boom") })
	})
}

type stubHost struct{}

func (stubHost) Resolve(string) (Descriptor, bool) { return Descriptor{}, false }
func (stubHost) Invoke(context.Context, Descriptor, []string) int { return 0 }

func TestHost(t *testing.T) {
	t.Parallel()

	if _, ok := HostFrom(context.Background()); ok {
		t.Error("HostFrom() found a host in an empty context")
	}
	ctx := WithHost(context.Background(), stubHost{})
	if _, ok := HostFrom(ctx); !ok {
		t.Error("HostFrom() did not find the stored host")
	}
}
