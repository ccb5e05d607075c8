// SPDX-License-Identifier: MPL-2.0

package findutils

import (
	"context"

	"github.com/u-root/u-root/pkg/core/find"

	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Find is the find applet, backed by u-root.
func Find(ctx context.Context, argv []string) int {
	return appletutil.RunCore(ctx, argv, find.New())
}
