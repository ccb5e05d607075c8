// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Ln creates hard or symbolic links.
func Ln(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		symbolic := fs.BoolP("symbolic", "s", false, "make symlinks instead of hardlinks")
		force := fs.BoolP("force", "f", false, "remove existing destinations")
		noDeref := fs.BoolP("no-dereference", "n", false, "treat LINK as a normal file if it is a symlink to a directory")
		verbose := fs.BoolP("verbose", "v", false, "verbose")
		fs.BoolP("backup", "b", false, "ignored")
		fs.StringP("suffix", "S", "", "ignored")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}

		operands := fs.Args()
		var targets []string
		var dest string
		switch len(operands) {
		case 0:
			return appletutil.ErrUsage
		case 1:
			targets, dest = operands, "."
		default:
			targets, dest = operands[:len(operands)-1], operands[len(operands)-1]
		}

		destIsDir := false
		if fi, err := statMaybeNoDeref(applet.Path(ctx, dest), *noDeref); err == nil && fi.IsDir() {
			destIsDir = true
		}
		if len(targets) > 1 && !destIsDir {
			return fmt.Errorf("%s: not a directory", dest)
		}

		for _, target := range targets {
			link := dest
			if destIsDir {
				link = filepath.Join(dest, filepath.Base(target))
			}
			linkPath := applet.Path(ctx, link)

			if *force {
				if err := os.Remove(linkPath); err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%s: %w", link, appletutil.Cause(err))
				}
			}

			var err error
			if *symbolic {
				err = os.Symlink(target, linkPath)
			} else {
				err = os.Link(applet.Path(ctx, target), linkPath)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", link, appletutil.Cause(err))
			}
			if *verbose {
				fmt.Fprintf(stdio.Stdout, "'%s' -> '%s'\n", link, target)
			}
		}
		return nil
	})
}

func statMaybeNoDeref(path string, noDeref bool) (os.FileInfo, error) {
	if noDeref {
		return os.Lstat(path)
	}
	return os.Stat(path)
}
