// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
	"github.com/shellbox/shellbox/internal/config"
)

type (
	// invocation is a parsed shell command line.
	invocation struct {
		command     bool // -c
		stdin       bool // -s
		interactive bool // -i
		script      string
		file        string
		arg0        string
		args        []string
		setOptions  []string
	}

	// session runs scripts for one shell invocation.
	session struct {
		stdio         *applet.IO
		host          applet.Host
		preferApplets bool
	}
)

// Ash runs a script given with -c, read from FILE, or read from stdin.
// Only a terminal stdin without -c or FILE gets a prompt.
func Ash(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		name := applet.Name(ctx, argv[0])
		inv, err := parseArgs(name, args)
		if err != nil {
			return err
		}

		s := newSession(ctx, stdio)
		switch {
		case inv.command:
			return s.exec(ctx, strings.NewReader(inv.script), inv)
		case inv.file != "":
			f, err := os.Open(applet.Path(ctx, inv.file))
			if err != nil {
				return appletutil.Statusf(2, "can't open '%s': %v", inv.file, appletutil.Cause(err))
			}
			defer f.Close()
			return s.exec(ctx, f, inv)
		case inv.interactive || isTerminal(stdio.Stdin):
			return s.interactive(ctx, inv)
		default:
			return s.exec(ctx, stdio.Stdin, inv)
		}
	})
}

// parseArgs reads the busybox ash command line. Option letters may be
// combined ("-ec"); a leading "+" turns a set option off.
func parseArgs(name string, args []string) (invocation, error) {
	inv := invocation{arg0: name}

	i := 0
options:
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if len(arg) < 2 || (arg[0] != '-' && arg[0] != '+') {
			break
		}
		sign := arg[:1]
		for _, c := range arg[1:] {
			switch c {
			case 'c':
				inv.command = true
			case 's':
				inv.stdin = true
			case 'i':
				inv.interactive = true
			case 'l':
				// login shell: no profile is read
			case 'o':
				if i+1 >= len(args) {
					return inv, &appletutil.UsageError{Err: errors.New("-o requires an option name")}
				}
				i++
				inv.setOptions = append(inv.setOptions, sign+"o", args[i])
			case 'C', 'a', 'b', 'e', 'f', 'm', 'n', 'u', 'v', 'x':
				inv.setOptions = append(inv.setOptions, sign+string(c))
			case '-':
				break options
			default:
				return inv, &appletutil.UsageError{Err: fmt.Errorf("invalid option -- '%c'", c)}
			}
		}
	}
	rest := args[i:]

	switch {
	case inv.command:
		if len(rest) == 0 {
			return inv, appletutil.Statusf(2, "-c requires an argument")
		}
		inv.script = rest[0]
		if len(rest) > 1 {
			inv.arg0 = rest[1]
			inv.args = rest[2:]
		}
	case inv.stdin || len(rest) == 0:
		inv.args = rest
	default:
		inv.file = rest[0]
		inv.arg0 = rest[0]
		inv.args = rest[1:]
	}
	return inv, nil
}

func newSession(ctx context.Context, stdio *applet.IO) *session {
	host, _ := applet.HostFrom(ctx)
	return &session{
		stdio:         stdio,
		host:          host,
		preferApplets: config.FromContext(ctx).Shell.PreferApplets,
	}
}

// runner builds an interpreter for inv with extra environment entries.
func (s *session) runner(inv invocation, extraEnv []string) (*interp.Runner, error) {
	dir := s.stdio.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	params := append([]string{}, inv.setOptions...)
	params = append(params, "--")
	params = append(params, inv.args...)

	return interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(s.stdio.Environ(), extraEnv...)...)),
		interp.StdIO(s.stdio.Stdin, s.stdio.Stdout, s.stdio.Stderr),
		interp.ExecHandlers(s.execHandler),
		interp.Params(params...),
	)
}

// exec parses all of r and runs it. The exit status of the script becomes
// the applet's status.
func (s *session) exec(ctx context.Context, r io.Reader, inv invocation) error {
	return s.run(ctx, r, inv, nil)
}

func (s *session) run(ctx context.Context, r io.Reader, inv invocation, extraEnv []string) error {
	prog, err := syntax.NewParser().Parse(r, inv.arg0)
	if err != nil {
		return &appletutil.StatusError{Code: 2, Err: err}
	}
	runner, err := s.runner(inv, extraEnv)
	if err != nil {
		return &appletutil.UsageError{Err: err}
	}
	return exitError(runner.Run(ctx, prog))
}

// interactive reads statements from stdin, prompting on stderr.
func (s *session) interactive(ctx context.Context, inv invocation) error {
	runner, err := s.runner(inv, nil)
	if err != nil {
		return &appletutil.UsageError{Err: err}
	}

	prompt := func() {
		ps1 := "$ "
		if os.Geteuid() == 0 {
			ps1 = "# "
		}
		fmt.Fprint(s.stdio.Stderr, ps1)
	}

	var last error
	parser := syntax.NewParser()
	prompt()
	err = parser.Interactive(s.stdio.Stdin, func(stmts []*syntax.Stmt) bool {
		if parser.Incomplete() {
			fmt.Fprint(s.stdio.Stderr, "> ")
			return true
		}
		for _, stmt := range stmts {
			last = runner.Run(ctx, stmt)
			if runner.Exited() {
				return false
			}
		}
		prompt()
		return true
	})
	if err != nil {
		fmt.Fprintf(s.stdio.Stderr, "%v\n", err)
	}
	return exitError(last)
}

// exitError converts an interpreter result into an applet error.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		if status == 0 {
			return nil
		}
		return appletutil.Status(int(status))
	}
	if errors.Is(err, context.Canceled) {
		return appletutil.Status(130)
	}
	return err
}

// RunScript runs script with stdio, its environment plus env, and the
// applet-aware exec handler of the shell applet. Unset fields of stdio come
// from the process. A nonzero exit status is returned as an
// *appletutil.StatusError.
func RunScript(ctx context.Context, stdio *applet.IO, script string, env []string) error {
	s := newSession(ctx, applet.IOFrom(applet.WithIO(ctx, stdio)))
	return s.run(ctx, strings.NewReader(script), invocation{arg0: "sh"}, env)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
