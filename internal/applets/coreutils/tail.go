// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Tail prints the last lines or bytes of each input, or everything from
// line or byte N with a "+N" count.
func Tail(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		lines := fs.StringP("lines", "n", "10", "print last N lines")
		byteSpec := fs.StringP("bytes", "c", "", "print last N bytes")
		quiet := fs.BoolP("quiet", "q", false, "never print headers")
		verbose := fs.BoolP("verbose", "v", false, "always print headers")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}

		spec, byBytes := *lines, false
		if *byteSpec != "" {
			spec, byBytes = *byteSpec, true
		}
		n, fromStart, err := parseCount(spec, true)
		if err != nil {
			return err
		}

		out := bufio.NewWriter(stdio.Stdout)
		headers := 0
		err = appletutil.ProcessFilesOrStdin(ctx, argv[0], fs.Args(), func(r io.Reader, name string, _, total int) error {
			if *verbose || (total > 1 && !*quiet) {
				fileHeader(out, name, &headers)
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			_, err = out.Write(tailSlice(data, n, fromStart, byBytes))
			return err
		})
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		return err
	})
}

// tailSlice selects the part of data tail prints. Counts from the start
// are 1-based, so "+1" is the whole input.
func tailSlice(data []byte, n int64, fromStart, byBytes bool) []byte {
	if byBytes {
		size := int64(len(data))
		if fromStart {
			if n <= 1 {
				return data
			}
			return data[min(n-1, size):]
		}
		return data[size-min(n, size):]
	}

	if fromStart {
		start := 0
		for line := int64(1); line < n; line++ {
			i := bytes.IndexByte(data[start:], '\n')
			if i < 0 {
				return nil
			}
			start += i + 1
		}
		return data[start:]
	}

	if n == 0 {
		return nil
	}
	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
	}
	start := end
	for seen := int64(0); start > 0; start-- {
		if data[start-1] == '\n' {
			seen++
			if seen == n {
				break
			}
		}
	}
	return data[start:]
}
