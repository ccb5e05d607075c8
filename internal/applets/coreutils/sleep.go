// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

var sleepUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// Sleep pauses for the sum of its arguments. It returns early, with status
// 1, when ctx is cancelled.
func Sleep(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, _ *applet.IO, args []string) error {
		if len(args) == 0 {
			return appletutil.ErrUsage
		}

		var total time.Duration
		for _, arg := range args {
			d, err := parseSleep(arg)
			if err != nil {
				return err
			}
			total += d
		}

		timer := time.NewTimer(total)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return appletutil.Status(1)
		}
	})
}

func parseSleep(arg string) (time.Duration, error) {
	unit := time.Second
	num := arg
	if n := len(arg); n > 0 {
		if u, ok := sleepUnits[arg[n-1]]; ok {
			unit = u
			num = arg[:n-1]
		}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid number '%s'", arg)
	}
	return time.Duration(v * float64(unit)), nil
}
