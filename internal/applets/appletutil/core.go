// SPDX-License-Identifier: MPL-2.0

package appletutil

import (
	"context"
	"os"

	"github.com/u-root/u-root/pkg/core"

	"github.com/shellbox/shellbox/internal/applet"
)

// Configure connects a u-root core.Command to the invocation IO.
func Configure(ctx context.Context, cmd core.Command) {
	stdio := applet.IOFrom(ctx)
	cmd.SetIO(stdio.Stdin, stdio.Stdout, stdio.Stderr)
	dir := stdio.Dir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	cmd.SetWorkingDir(dir)
	cmd.SetLookupEnv(stdio.LookupEnv)
}

// RunCore runs a u-root core.Command as an applet. argv[0] is the applet
// name and is not passed on; u-root commands take only their arguments.
func RunCore(ctx context.Context, argv []string, cmd core.Command) int {
	Configure(ctx, cmd)
	return Report(ctx, applet.Name(ctx, argv[0]), cmd.RunContext(ctx, argv[1:]...))
}
