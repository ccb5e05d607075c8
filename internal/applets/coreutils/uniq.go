// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// Uniq collapses adjacent duplicate lines.
func Uniq(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		count := fs.BoolP("count", "c", false, "prefix lines by the number of occurrences")
		dupOnly := fs.BoolP("repeated", "d", false, "only print duplicate lines")
		uniqOnly := fs.BoolP("unique", "u", false, "only print unique lines")
		fold := fs.BoolP("ignore-case", "i", false, "ignore case")
		skipFields := fs.IntP("skip-fields", "f", 0, "skip first N fields")
		skipChars := fs.IntP("skip-chars", "s", 0, "skip first N chars")
		width := fs.IntP("check-chars", "w", 0, "compare at most N chars")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		operands := fs.Args()
		if len(operands) > 2 {
			return appletutil.ErrUsage
		}

		in := stdio.Stdin
		if len(operands) > 0 && operands[0] != "-" {
			f, err := os.Open(applet.Path(ctx, operands[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", operands[0], appletutil.Cause(err))
			}
			defer f.Close()
			in = f
		}
		out := stdio.Stdout
		if len(operands) > 1 && operands[1] != "-" {
			f, err := os.Create(applet.Path(ctx, operands[1]))
			if err != nil {
				return fmt.Errorf("%s: %w", operands[1], appletutil.Cause(err))
			}
			defer f.Close()
			out = f
		}

		key := func(line string) string {
			for i := 0; i < *skipFields; i++ {
				line = strings.TrimLeft(line, " \t")
				if j := strings.IndexAny(line, " \t"); j >= 0 {
					line = line[j:]
				} else {
					line = ""
				}
			}
			line = line[min(*skipChars, len(line)):]
			if *width > 0 && len(line) > *width {
				line = line[:*width]
			}
			if *fold {
				line = strings.ToLower(line)
			}
			return line
		}

		w := bufio.NewWriter(out)
		emit := func(line string, n int) {
			if (*dupOnly && n < 2) || (*uniqOnly && n > 1) {
				return
			}
			if *count {
				fmt.Fprintf(w, "%7d %s\n", n, line)
				return
			}
			w.WriteString(line)
			w.WriteByte('\n')
		}

		if err := uniqLines(in, key, emit); err != nil {
			return err
		}
		return w.Flush()
	})
}

// uniqLines calls emit once per run of lines with equal keys.
func uniqLines(r io.Reader, key func(string) string, emit func(line string, n int)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var prev, prevKey string
	n := 0
	for sc.Scan() {
		line := sc.Text()
		k := key(line)
		if n > 0 && k == prevKey {
			n++
			continue
		}
		if n > 0 {
			emit(prev, n)
		}
		prev, prevKey, n = line, k, 1
	}
	if n > 0 {
		emit(prev, n)
	}
	return sc.Err()
}
