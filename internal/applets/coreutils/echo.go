// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
)

// Echo prints its arguments. Like busybox it only treats a leading argument
// as options when every letter is one of n, e or E; "-x" is printed.
func Echo(ctx context.Context, argv []string) int {
	stdio := applet.IOFrom(ctx)
	args := argv[1:]

	newline, escapes := true, false
	for len(args) > 0 && isEchoOptions(args[0]) {
		for _, c := range args[0][1:] {
			switch c {
			case 'n':
				newline = false
			case 'e':
				escapes = true
			case 'E':
				escapes = false
			}
		}
		args = args[1:]
	}

	w := bufio.NewWriter(stdio.Stdout)
	for i, arg := range args {
		if i > 0 {
			w.WriteByte(' ')
		}
		if !escapes {
			w.WriteString(arg)
			continue
		}
		s, stop := unescape(arg)
		w.WriteString(s)
		if stop {
			newline = false
			break
		}
	}
	if newline {
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		applet.Errorf(ctx, argv[0], "write error: %v", err)
		return 1
	}
	return 0
}

func isEchoOptions(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		if c != 'n' && c != 'e' && c != 'E' {
			return false
		}
	}
	return true
}

// unescape expands echo -e escapes. stop is set when \c was seen, which
// suppresses all further output.
func unescape(s string) (out string, stop bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'c':
			return b.String(), true
		case 'e':
			b.WriteByte(0x1b)
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '\\':
			b.WriteByte('\\')
		case '0':
			n, width := digits(s[i+1:], 3, 8)
			b.WriteByte(byte(n))
			i += width
		case 'x':
			n, width := digits(s[i+1:], 2, 16)
			if width == 0 {
				b.WriteString(`\x`)
				continue
			}
			b.WriteByte(byte(n))
			i += width
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String(), false
}

// digits parses up to limit leading digits of s in base and reports how
// many bytes it consumed.
func digits(s string, limit, base int) (value, width int) {
	for width < limit && width < len(s) {
		if _, err := strconv.ParseUint(s[width:width+1], base, 8); err != nil {
			break
		}
		width++
	}
	if width == 0 {
		return 0, 0
	}
	n, _ := strconv.ParseUint(s[:width], base, 16) //nolint:errcheck // digits were validated above
	return int(n), width
}
