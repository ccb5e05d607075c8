// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// wcCounts holds the counters in output column order.
type wcCounts struct {
	lines, words, chars, bytes, longest int64
}

func (c *wcCounts) add(o wcCounts) {
	c.lines += o.lines
	c.words += o.words
	c.chars += o.chars
	c.bytes += o.bytes
	c.longest = max(c.longest, o.longest)
}

// Wc counts lines, words, characters and bytes.
func Wc(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		showBytes := fs.BoolP("bytes", "c", false, "count bytes")
		showChars := fs.BoolP("chars", "m", false, "count characters")
		showLines := fs.BoolP("lines", "l", false, "count newlines")
		showWords := fs.BoolP("words", "w", false, "count words")
		showLongest := fs.BoolP("max-line-length", "L", false, "print longest line length")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		if !*showBytes && !*showChars && !*showLines && !*showWords && !*showLongest {
			*showLines, *showWords, *showBytes = true, true, true
		}

		columns := func(c wcCounts) []int64 {
			var cols []int64
			if *showLines {
				cols = append(cols, c.lines)
			}
			if *showWords {
				cols = append(cols, c.words)
			}
			if *showChars {
				cols = append(cols, c.chars)
			}
			if *showBytes {
				cols = append(cols, c.bytes)
			}
			if *showLongest {
				cols = append(cols, c.longest)
			}
			return cols
		}

		var total wcCounts
		files := fs.Args()
		err := appletutil.ProcessFilesOrStdin(ctx, argv[0], files, func(r io.Reader, name string, _, _ int) error {
			c, err := countReader(r)
			if err != nil {
				return err
			}
			total.add(c)
			if len(files) == 0 {
				name = ""
			}
			printWc(stdio.Stdout, columns(c), name)
			return nil
		})
		if len(files) > 1 {
			printWc(stdio.Stdout, columns(total), "total")
		}
		return err
	})
}

// printWc pads columns only when more than one is printed, so that
// "wc -l < file" prints a bare number.
func printWc(w io.Writer, cols []int64, name string) {
	var b strings.Builder
	for i, v := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		if len(cols) == 1 && name == "" {
			fmt.Fprintf(&b, "%d", v)
		} else {
			fmt.Fprintf(&b, "%7d", v)
		}
	}
	if name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	fmt.Fprintln(w, b.String())
}

func countReader(r io.Reader) (wcCounts, error) {
	var c wcCounts
	br := bufio.NewReader(r)
	inWord := false
	var lineLen int64
	for {
		ch, size, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c, err
		}
		c.bytes += int64(size)
		if ch != utf8.RuneError || size > 1 {
			c.chars++
		}
		switch {
		case ch == '\n':
			c.lines++
			c.longest = max(c.longest, lineLen)
			lineLen = 0
		case ch == '\t':
			lineLen += 8 - lineLen%8
		default:
			lineLen++
		}
		if unicode.IsSpace(ch) {
			inWord = false
		} else if !inWord {
			inWord = true
			c.words++
		}
	}
	c.longest = max(c.longest, lineLen)
	return c, nil
}
