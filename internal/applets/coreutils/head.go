// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// fileHeader prints the "==> name <==" separator used by head and tail.
// printed counts the headers written so far.
func fileHeader(w io.Writer, name string, printed *int) {
	if *printed > 0 {
		fmt.Fprintln(w)
	}
	*printed++
	if name == "-" {
		name = "standard input"
	}
	fmt.Fprintf(w, "==> %s <==\n", name)
}

// Head prints the first lines or bytes of each input.
func Head(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		lines := fs.StringP("lines", "n", "10", "print first N lines")
		bytes := fs.StringP("bytes", "c", "", "print first N bytes")
		quiet := fs.BoolP("quiet", "q", false, "never print headers")
		verbose := fs.BoolP("verbose", "v", false, "always print headers")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}

		spec, byBytes := *lines, false
		if *bytes != "" {
			spec, byBytes = *bytes, true
		}
		n, _, err := parseCount(spec, false)
		if err != nil {
			return err
		}

		out := bufio.NewWriter(stdio.Stdout)
		headers := 0
		err = appletutil.ProcessFilesOrStdin(ctx, argv[0], fs.Args(), func(r io.Reader, name string, _, total int) error {
			if *verbose || (total > 1 && !*quiet) {
				fileHeader(out, name, &headers)
			}
			if byBytes {
				_, err := io.CopyN(out, r, n)
				if err == io.EOF {
					return nil
				}
				return err
			}
			return copyLines(out, bufio.NewReader(r), n)
		})
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		return err
	})
}

// copyLines copies the first n lines of r, keeping a missing final newline
// missing.
func copyLines(w io.Writer, r *bufio.Reader, n int64) error {
	for ; n > 0; n-- {
		line, err := r.ReadSlice('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return werr
			}
		}
		switch {
		case err == bufio.ErrBufferFull:
			n++ // same line continues
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
	}
	return nil
}
