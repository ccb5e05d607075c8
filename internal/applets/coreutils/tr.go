// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// trClasses are the [:name:] classes tr understands, as byte predicates.
var trClasses = map[string]func(c byte) bool{
	"alnum":  func(c byte) bool { return isAlpha(c) || isDigit(c) },
	"alpha":  isAlpha,
	"blank":  func(c byte) bool { return c == ' ' || c == '\t' },
	"cntrl":  func(c byte) bool { return c < 32 || c == 127 },
	"digit":  isDigit,
	"graph":  func(c byte) bool { return c > 32 && c < 127 },
	"lower":  func(c byte) bool { return c >= 'a' && c <= 'z' },
	"print":  func(c byte) bool { return c >= 32 && c < 127 },
	"punct":  func(c byte) bool { return c > 32 && c < 127 && !isAlpha(c) && !isDigit(c) },
	"space":  func(c byte) bool { return c == ' ' || (c >= '\t' && c <= '\r') },
	"upper":  func(c byte) bool { return c >= 'A' && c <= 'Z' },
	"xdigit": func(c byte) bool { return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f') },
}

func isAlpha(c byte) bool { return c|0x20 >= 'a' && c|0x20 <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Tr translates, squeezes or deletes bytes from stdin. It works on bytes,
// not runes, like busybox built without UTF-8 support.
func Tr(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		complement := fs.BoolP("complement", "c", false, "take complement of STRING1")
		fs.BoolP("complement-chars", "C", false, "same as -c")
		del := fs.BoolP("delete", "d", false, "delete characters in STRING1")
		squeeze := fs.BoolP("squeeze-repeats", "s", false, "squeeze repeated characters")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		if c, _ := fs.GetBool("complement-chars"); c {
			*complement = true
		}

		operands := fs.Args()
		if len(operands) == 0 {
			return &appletutil.UsageError{Err: errors.New("missing operand")}
		}
		set1, err := expandTrSet(operands[0])
		if err != nil {
			return err
		}
		var set2 []byte
		if len(operands) > 1 {
			if set2, err = expandTrSet(operands[1]); err != nil {
				return err
			}
		}
		if !*del && !*squeeze && len(set2) == 0 {
			return &appletutil.UsageError{Err: fmt.Errorf("missing operand after '%s'", operands[0])}
		}

		t := newTrTable(set1, set2, *complement, *del, *squeeze)
		return t.run(stdio.Stdin, stdio.Stdout)
	})
}

type trTable struct {
	mapping [256]byte
	deleted [256]bool
	squeeze [256]bool
}

func newTrTable(set1, set2 []byte, complement, del, squeeze bool) *trTable {
	t := &trTable{}
	for i := range t.mapping {
		t.mapping[i] = byte(i)
	}

	var in1 [256]bool
	for _, c := range set1 {
		in1[c] = true
	}
	if complement {
		set1 = set1[:0:0]
		for i := range 256 {
			if !in1[i] {
				set1 = append(set1, byte(i))
			}
		}
		for i := range in1 {
			in1[i] = !in1[i]
		}
	}

	switch {
	case del:
		t.deleted = in1
		if squeeze {
			for _, c := range set2 {
				t.squeeze[c] = true
			}
		}
	case len(set2) > 0:
		for i, c := range set1 {
			t.mapping[c] = set2[min(i, len(set2)-1)]
		}
		if squeeze {
			for _, c := range set2 {
				t.squeeze[c] = true
			}
		}
	default: // squeeze only
		t.squeeze = in1
	}
	return t
}

func (t *trTable) run(r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	last := -1
	for {
		c, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if t.deleted[c] {
			continue
		}
		c = t.mapping[c]
		if t.squeeze[c] && int(c) == last {
			continue
		}
		last = int(c)
		if err := out.WriteByte(c); err != nil {
			return err
		}
	}
	return out.Flush()
}

// expandTrSet expands ranges (a-z), classes ([:digit:]), repeats ([c*n])
// and backslash escapes into the list of bytes they denote.
func expandTrSet(s string) ([]byte, error) {
	var out []byte
	for i := 0; i < len(s); {
		if s[i] == '[' && i+1 < len(s) && s[i+1] == ':' {
			if end := strings.Index(s[i+2:], ":]"); end >= 0 {
				name := s[i+2 : i+2+end]
				pred, ok := trClasses[name]
				if !ok {
					return nil, fmt.Errorf("invalid character class '%s'", name)
				}
				for c := range 256 {
					if pred(byte(c)) {
						out = append(out, byte(c))
					}
				}
				i += end + 4
				continue
			}
		}
		if s[i] == '[' && i+3 < len(s) && s[i+2] == '*' {
			if end := strings.IndexByte(s[i+3:], ']'); end >= 0 {
				n, err := strconv.Atoi(s[i+3 : i+3+end])
				if err != nil || n < 1 {
					n = 1
				}
				for range n {
					out = append(out, s[i+1])
				}
				i += end + 4
				continue
			}
		}

		c, width := trByte(s[i:])
		if i+width+1 < len(s) && s[i+width] == '-' {
			hi, hiWidth := trByte(s[i+width+1:])
			if hi < c {
				return nil, fmt.Errorf("range-endpoints of '%s' are in reverse collating sequence order", s[i:i+width+1+hiWidth])
			}
			for b := int(c); b <= int(hi); b++ {
				out = append(out, byte(b))
			}
			i += width + 1 + hiWidth
			continue
		}
		out = append(out, c)
		i += width
	}
	return out, nil
}

// trByte decodes one possibly escaped byte at the start of s.
func trByte(s string) (byte, int) {
	if s[0] != '\\' || len(s) == 1 {
		return s[0], 1
	}
	switch s[1] {
	case 'n':
		return '\n', 2
	case 't':
		return '\t', 2
	case 'r':
		return '\r', 2
	case 'f':
		return '\f', 2
	case 'v':
		return '\v', 2
	case 'a':
		return '\a', 2
	case 'b':
		return '\b', 2
	case '\\':
		return '\\', 2
	}
	if s[1] >= '0' && s[1] <= '7' {
		n, width := digits(s[1:], 3, 8)
		return byte(n), 1 + width
	}
	return s[1], 2
}
