// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/u-root/u-root/pkg/core/base64"
	"github.com/u-root/u-root/pkg/core/cat"
	"github.com/u-root/u-root/pkg/core/chmod"
	"github.com/u-root/u-root/pkg/core/cp"
	"github.com/u-root/u-root/pkg/core/ls"
	"github.com/u-root/u-root/pkg/core/mkdir"
	"github.com/u-root/u-root/pkg/core/mktemp"
	"github.com/u-root/u-root/pkg/core/mv"
	"github.com/u-root/u-root/pkg/core/rm"
	"github.com/u-root/u-root/pkg/core/shasum"
	"github.com/u-root/u-root/pkg/core/touch"

	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// shaAlgorithms maps the sha*sum applet names to u-root's -a values.
var shaAlgorithms = map[string]string{
	"sha1sum":   "1",
	"sha256sum": "256",
	"sha512sum": "512",
}

// Cat is the cat applet.
func Cat(ctx context.Context, argv []string) int { return appletutil.RunCore(ctx, argv, cat.New()) }

// Cp is the cp applet.
func Cp(ctx context.Context, argv []string) int { return appletutil.RunCore(ctx, argv, cp.New()) }

// Mv is the mv applet.
func Mv(ctx context.Context, argv []string) int { return appletutil.RunCore(ctx, argv, mv.New()) }

// Rm is the rm applet.
func Rm(ctx context.Context, argv []string) int { return appletutil.RunCore(ctx, argv, rm.New()) }

// Mkdir is the mkdir applet.
func Mkdir(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, mkdir.New())
}

// Ls is the ls applet.
func Ls(ctx context.Context, argv []string) int { return appletutil.RunCore(ctx, argv, ls.New()) }

// Touch is the touch applet.
func Touch(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, touch.New())
}

// Chmod is the chmod applet.
func Chmod(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, chmod.New())
}

// Mktemp is the mktemp applet.
func Mktemp(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, mktemp.New())
}

// Base64 is the base64 applet.
func Base64(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, base64.New())
}

// ShaSum implements sha1sum, sha256sum and sha512sum. The algorithm comes
// from the name it was invoked as.
func ShaSum(ctx context.Context, argv []string) int {
	alg, ok := shaAlgorithms[argv[0]]
	if !ok {
		alg = "1"
	}
	args := make([]string, 0, len(argv)+2)
	args = append(args, argv[0], "-a", alg)
	args = append(args, argv[1:]...)
	return appletutil.RunCore(ctx, args, shasum.New())
}
