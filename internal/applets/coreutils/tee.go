// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Tee copies stdin to stdout and to each file.
func Tee(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		appendMode := fs.BoolP("append", "a", false, "append to the given FILEs")
		ignoreInt := fs.BoolP("ignore-interrupts", "i", false, "ignore SIGINT")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		if *ignoreInt {
			signal.Ignore(os.Interrupt)
		}

		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if *appendMode {
			flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}

		writers := []io.Writer{stdio.Stdout}
		failed := false
		for _, name := range fs.Args() {
			if name == "-" {
				writers = append(writers, stdio.Stdout)
				continue
			}
			f, err := os.OpenFile(applet.Path(ctx, name), flags, 0o666)
			if err != nil {
				applet.Errorf(ctx, argv[0], "%s: %v", name, appletutil.Cause(err))
				failed = true
				continue
			}
			defer f.Close()
			writers = append(writers, f)
		}

		if _, err := io.Copy(io.MultiWriter(writers...), stdio.Stdin); err != nil {
			return err
		}
		if failed {
			return appletutil.Status(1)
		}
		return nil
	})
}
