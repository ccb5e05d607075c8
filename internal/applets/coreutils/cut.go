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

// cutList is a set of 1-based positions given as "N", "N-", "-M" or "N-M"
// ranges. Output keeps input order regardless of list order.
type cutList []struct{ lo, hi int }

func parseCutList(spec string) (cutList, error) {
	var list cutList
	for part := range strings.SplitSeq(spec, ",") {
		if part == "" {
			return nil, fmt.Errorf("invalid list '%s'", spec)
		}
		loSpec, hiSpec, isRange := strings.Cut(part, "-")
		lo, hi := 1, 0
		var err error
		if loSpec != "" {
			if lo, err = strconv.Atoi(loSpec); err != nil || lo < 1 {
				return nil, fmt.Errorf("invalid list '%s'", spec)
			}
		}
		switch {
		case !isRange:
			hi = lo
		case hiSpec != "":
			if hi, err = strconv.Atoi(hiSpec); err != nil || hi < lo {
				return nil, fmt.Errorf("invalid list '%s'", spec)
			}
		}
		list = append(list, struct{ lo, hi int }{lo, hi})
	}
	return list, nil
}

// has reports whether position i (1-based) is selected; hi 0 is open.
func (l cutList) has(i int) bool {
	for _, r := range l {
		if i >= r.lo && (r.hi == 0 || i <= r.hi) {
			return true
		}
	}
	return false
}

// Cut prints selected bytes, characters or fields of each line.
func Cut(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		byteList := fs.StringP("bytes", "b", "", "output only bytes from LIST")
		charList := fs.StringP("characters", "c", "", "output only characters from LIST")
		fieldList := fs.StringP("fields", "f", "", "print only these fields")
		delim := fs.StringP("delimiter", "d", "\t", "field delimiter")
		onlyDelimited := fs.BoolP("only-delimited", "s", false, "drop lines with no delimiter")
		fs.BoolP("n", "n", false, "ignored")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}

		var mode byte
		var spec string
		for _, m := range []struct {
			flag byte
			val  string
		}{{'b', *byteList}, {'c', *charList}, {'f', *fieldList}} {
			if m.val == "" {
				continue
			}
			if mode != 0 {
				return &appletutil.UsageError{Err: errors.New("only one type of list may be specified")}
			}
			mode, spec = m.flag, m.val
		}
		if mode == 0 {
			return &appletutil.UsageError{Err: errors.New("expected a list of bytes, characters, or fields")}
		}
		if len(*delim) != 1 {
			return errors.New("the delimiter must be a single character")
		}
		list, err := parseCutList(spec)
		if err != nil {
			return err
		}

		out := bufio.NewWriter(stdio.Stdout)
		err = appletutil.ProcessFilesOrStdin(ctx, argv[0], fs.Args(), func(r io.Reader, _ string, _, _ int) error {
			sc := bufio.NewScanner(r)
			sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			for sc.Scan() {
				line := sc.Text()
				switch mode {
				case 'b':
					for i := 0; i < len(line); i++ {
						if list.has(i + 1) {
							out.WriteByte(line[i])
						}
					}
				case 'c':
					i := 0
					for _, ch := range line {
						i++
						if list.has(i) {
							out.WriteRune(ch)
						}
					}
				case 'f':
					if !strings.Contains(line, *delim) {
						if *onlyDelimited {
							continue
						}
						out.WriteString(line)
						break
					}
					first := true
					for i, field := range strings.Split(line, *delim) {
						if !list.has(i + 1) {
							continue
						}
						if !first {
							out.WriteString(*delim)
						}
						out.WriteString(field)
						first = false
					}
				}
				out.WriteByte('\n')
			}
			return sc.Err()
		})
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		return err
	})
}
