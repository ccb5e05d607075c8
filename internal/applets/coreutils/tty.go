// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Tty prints the terminal connected to stdin. Status 1 means stdin is not
// a terminal.
func Tty(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		silent := fs.BoolP("silent", "s", false, "print nothing, only return exit status")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}

		f, ok := stdio.Stdin.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			if !*silent {
				fmt.Fprintln(stdio.Stdout, "not a tty")
			}
			return appletutil.Status(1)
		}
		if *silent {
			return nil
		}
		_, err := fmt.Fprintln(stdio.Stdout, ttyName(f))
		return err
	})
}

// ttyName resolves the terminal device behind f through /proc or /dev/fd.
func ttyName(f *os.File) string {
	fd := strconv.Itoa(int(f.Fd()))
	for _, dir := range []string{"/proc/self/fd", "/dev/fd"} {
		if name, err := os.Readlink(filepath.Join(dir, fd)); err == nil {
			return name
		}
	}
	return f.Name()
}
