// SPDX-License-Identifier: MPL-2.0

package utillinux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

type scriptOptions struct {
	append  bool
	command string
	quiet   bool
	flush   bool
	timing  string
	outfile string
}

// Script runs a shell, or the -c command, on a pseudo-terminal and copies
// everything it prints to OUTFILE. The exit status is the child's.
func Script(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		opts, err := parseScript(applet.Name(ctx, argv[0]), args)
		if err != nil {
			return err
		}
		return runScript(ctx, stdio, opts)
	})
}

func parseScript(name string, args []string) (scriptOptions, error) {
	var opts scriptOptions
	fs := appletutil.NewFlagSet(name)
	fs.BoolVarP(&opts.append, "append", "a", false, "append output")
	fs.StringVarP(&opts.command, "command", "c", "", "run PROG, not shell")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "no banner")
	fs.BoolVarP(&opts.flush, "flush", "f", false, "flush after each write")
	fs.StringVarP(&opts.timing, "timing", "t", "", "timing output")
	fs.Lookup("timing").NoOptDefVal = "-"
	if err := appletutil.Parse(fs, args); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
		opts.outfile = "typescript"
	case 1:
		opts.outfile = fs.Arg(0)
	default:
		return opts, &appletutil.UsageError{}
	}
	return opts, nil
}

func runScript(ctx context.Context, stdio *applet.IO, opts scriptOptions) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if opts.append {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	out, err := os.OpenFile(applet.Path(ctx, opts.outfile), flags, 0o644)
	if err != nil {
		return appletutil.Statusf(1, "can't open '%s': %v", opts.outfile, appletutil.Cause(err))
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var timing io.Writer
	switch opts.timing {
	case "":
	case "-":
		timing = stdio.Stderr
	default:
		tf, err := os.Create(applet.Path(ctx, opts.timing))
		if err != nil {
			return appletutil.Statusf(1, "can't open '%s': %v", opts.timing, appletutil.Cause(err))
		}
		defer tf.Close()
		timing = tf
	}

	shell, ok := stdio.LookupEnv("SHELL")
	if !ok || shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, shell)
	if opts.command != "" {
		cmd = exec.CommandContext(ctx, shell, "-c", opts.command)
	}
	cmd.Dir = stdio.Dir
	cmd.Env = stdio.Environ()

	if !opts.quiet {
		fmt.Fprintf(stdio.Stdout, "Script started, output file is %s\n", opts.outfile)
		fmt.Fprintf(out, "Script started on %s\n", time.Now().Format(time.UnixDate))
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return appletutil.Statusf(1, "can't start %s: %v", shell, err)
	}
	defer ptmx.Close()

	if f, ok := stdio.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := pty.InheritSize(f, ptmx); err == nil {
			stop := watchResize(f, ptmx)
			defer stop()
		}
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer func() { _ = term.Restore(int(f.Fd()), state) }()
		}
	}

	go func() { _, _ = io.Copy(ptmx, stdio.Stdin) }()

	rec := &recorder{out: out, timing: timing, last: time.Now(), flush: opts.flush}
	copyErr := copyOutput(io.MultiWriter(stdio.Stdout, rec), ptmx)
	waitErr := cmd.Wait()

	if !opts.quiet {
		fmt.Fprintf(out, "\nScript done on %s\n", time.Now().Format(time.UnixDate))
		fmt.Fprintf(stdio.Stdout, "Script done, output file is %s\n", opts.outfile)
	}
	if copyErr != nil {
		return copyErr
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return appletutil.Status(exitErr.ExitCode() & 0xff)
	}
	return waitErr
}

// copyOutput copies the pty to w. Linux reports EIO once the last slave
// descriptor is closed; that is the end of the session.
func copyOutput(w io.Writer, ptmx io.Reader) error {
	_, err := io.Copy(w, ptmx)
	if err == nil || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// recorder writes session output to the typescript and, when timing is
// set, one "seconds bytes" line per chunk.
type recorder struct {
	out    *os.File
	timing io.Writer
	last   time.Time
	flush  bool
}

func (r *recorder) Write(p []byte) (int, error) {
	n, err := r.out.Write(p)
	if err != nil {
		return n, err
	}
	if r.flush {
		_ = r.out.Sync()
	}
	if r.timing != nil {
		now := time.Now()
		fmt.Fprintf(r.timing, "%f %d\n", now.Sub(r.last).Seconds(), n)
		r.last = now
	}
	return n, nil
}
