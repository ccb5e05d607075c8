// SPDX-License-Identifier: MPL-2.0

package miscutils

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Ttysize prints the dimensions of the terminal on stdin, or 80x24 when
// stdin is not a terminal. Arguments "w" and "h" select and order the
// fields; anything else is skipped.
func Ttysize(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		width, height := terminalSize(stdio.Stdin)

		if len(args) == 0 {
			args = []string{"w", "h"}
		}
		var fields []string
		for _, a := range args {
			switch a {
			case "w":
				fields = append(fields, strconv.Itoa(width))
			case "h":
				fields = append(fields, strconv.Itoa(height))
			}
		}
		_, err := io.WriteString(stdio.Stdout, strings.Join(fields, " ")+"\n")
		return err
	})
}

func terminalSize(r io.Reader) (width, height int) {
	width, height = 80, 24
	f, ok := r.(*os.File)
	if !ok {
		return width, height
	}
	if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return width, height
}
