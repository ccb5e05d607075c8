// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Basename strips the directory and an optional suffix from a name.
func Basename(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		if len(args) == 0 || len(args) > 2 {
			return appletutil.ErrUsage
		}
		suffix := ""
		if len(args) == 2 {
			suffix = args[1]
		}
		_, err := fmt.Fprintln(stdio.Stdout, baseName(args[0], suffix))
		return err
	})
}

// baseName follows POSIX basename: trailing slashes are ignored, "/" stays
// "/", and the suffix is only removed when something remains.
func baseName(name, suffix string) string {
	trimmed := strings.TrimRight(name, "/")
	if trimmed == "" {
		if name == "" {
			return ""
		}
		return "/"
	}
	base := trimmed[strings.LastIndexByte(trimmed, '/')+1:]
	if suffix != "" && suffix != base {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}

// Dirname prints the directory part of a name.
func Dirname(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		if len(args) != 1 {
			return appletutil.ErrUsage
		}
		_, err := fmt.Fprintln(stdio.Stdout, dirName(args[0]))
		return err
	})
}

func dirName(name string) string {
	trimmed := strings.TrimRight(name, "/")
	if trimmed == "" {
		if name == "" {
			return "."
		}
		return "/"
	}
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		return "."
	}
	dir := strings.TrimRight(trimmed[:i], "/")
	if dir == "" {
		return "/"
	}
	return dir
}

// Realpath prints the absolute, symlink-free form of each path.
func Realpath(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		if len(args) == 0 {
			return appletutil.ErrUsage
		}
		failed := false
		for _, arg := range args {
			abs, err := filepath.Abs(applet.Path(ctx, arg))
			if err == nil {
				abs, err = filepath.EvalSymlinks(abs)
			}
			if err != nil {
				applet.Errorf(ctx, argv[0], "%s: %v", arg, appletutil.Cause(err))
				failed = true
				continue
			}
			fmt.Fprintln(stdio.Stdout, abs)
		}
		if failed {
			return appletutil.Status(1)
		}
		return nil
	})
}
