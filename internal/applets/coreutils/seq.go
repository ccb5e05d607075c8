// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Seq prints a sequence of numbers. Options are parsed by hand because
// negative operands such as "-1" are not flags.
func Seq(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		sep, width := "\n", false
	options:
		for len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-' && !isNumber(args[0]) {
			switch opt := args[0]; {
			case opt == "--":
				args = args[1:]
				break options
			case opt == "-w":
				width = true
				args = args[1:]
			case opt == "-s":
				if len(args) < 2 {
					return &appletutil.UsageError{}
				}
				sep = args[1]
				args = args[2:]
			case strings.HasPrefix(opt, "-s"):
				sep = opt[2:]
				args = args[1:]
			default:
				return &appletutil.UsageError{Err: fmt.Errorf("invalid option -- '%s'", opt[1:])}
			}
		}
		if len(args) < 1 || len(args) > 3 {
			return appletutil.ErrUsage
		}

		first, inc := "1", "1"
		last := args[len(args)-1]
		switch len(args) {
		case 2:
			first = args[0]
		case 3:
			first, inc = args[0], args[1]
		}

		var nums [3]float64
		prec := 0
		for i, s := range []string{first, inc, last} {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid '%s'", s)
			}
			nums[i] = v
			if dot := strings.IndexByte(s, '.'); dot >= 0 && i != 2 {
				prec = max(prec, len(s)-dot-1)
			}
		}
		start, step, end := nums[0], nums[1], nums[2]
		if step == 0 {
			return fmt.Errorf("invalid increment '%s'", inc)
		}

		pad := 0
		if width {
			pad = max(len(strconv.FormatFloat(start, 'f', prec, 64)), len(strconv.FormatFloat(end, 'f', prec, 64)))
		}

		out := bufio.NewWriter(stdio.Stdout)
		n := 0
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if (step > 0 && v > end) || (step < 0 && v < end) {
				break
			}
			if n > 0 {
				out.WriteString(sep)
			}
			s := strconv.FormatFloat(v, 'f', prec, 64)
			if pad > len(s) {
				if strings.HasPrefix(s, "-") {
					s = "-" + strings.Repeat("0", pad-len(s)) + s[1:]
				} else {
					s = strings.Repeat("0", pad-len(s)) + s
				}
			}
			out.WriteString(s)
			n++
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if n > 0 {
			out.WriteByte('\n')
		}
		return out.Flush()
	})
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
