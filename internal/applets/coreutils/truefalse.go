// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
)

// True exits 0.
func True(ctx context.Context, _ []string) { applet.Exit(ctx, 0) }

// False exits 1.
func False(ctx context.Context, _ []string) { applet.Exit(ctx, 1) }

// Yes prints its arguments, or "y", until writing fails or ctx is done.
func Yes(ctx context.Context, args []string) {
	line := "y"
	if len(args) > 1 {
		line = strings.Join(args[1:], " ")
	}
	line += "\n"

	w := bufio.NewWriter(applet.IOFrom(ctx).Stdout)
	for ctx.Err() == nil {
		if _, err := w.WriteString(line); err != nil {
			applet.Exit(ctx, 1)
		}
	}
	_ = w.Flush()
	applet.Exit(ctx, 1)
}
