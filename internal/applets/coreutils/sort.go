// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

type (
	// sortKey selects fields start..end (1-based, end 0 = to end of line).
	sortKey struct {
		start, end int
	}

	sortOptions struct {
		numeric, reverse, unique, fold, blanks, stable bool
		sep                                            string
		keys                                           []sortKey
	}
)

// Sort sorts the lines of all inputs together.
func Sort(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		var opts sortOptions
		fs := appletutil.NewFlagSet(argv[0])
		fs.BoolVarP(&opts.numeric, "numeric-sort", "n", false, "sort numbers")
		fs.BoolVarP(&opts.reverse, "reverse", "r", false, "reverse sort order")
		fs.BoolVarP(&opts.unique, "unique", "u", false, "suppress duplicate lines")
		fs.BoolVarP(&opts.fold, "ignore-case", "f", false, "ignore case")
		fs.BoolVarP(&opts.blanks, "ignore-leading-blanks", "b", false, "ignore leading blanks")
		fs.BoolVarP(&opts.stable, "stable", "s", false, "stable sort")
		fs.StringVarP(&opts.sep, "field-separator", "t", "", "field separator")
		keySpecs := fs.StringArrayP("key", "k", nil, "sort by fields N[,M]")
		output := fs.StringP("output", "o", "", "output to FILE")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		if len(opts.sep) > 1 {
			return fmt.Errorf("bad -t parameter")
		}
		for _, spec := range *keySpecs {
			k, err := parseSortKey(spec)
			if err != nil {
				return err
			}
			opts.keys = append(opts.keys, k)
		}

		var lines []string
		err := appletutil.ProcessFilesOrStdin(ctx, argv[0], fs.Args(), func(r io.Reader, _ string, _, _ int) error {
			sc := bufio.NewScanner(r)
			sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			for sc.Scan() {
				lines = append(lines, sc.Text())
			}
			return sc.Err()
		})
		if err != nil {
			return err
		}

		sortLines(lines, &opts)

		var w io.Writer = stdio.Stdout
		if *output != "" {
			f, err := os.Create(applet.Path(ctx, *output))
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		out := bufio.NewWriter(w)
		for i, line := range lines {
			if opts.unique && i > 0 && opts.compare(lines[i-1], line) == 0 {
				continue
			}
			out.WriteString(line)
			out.WriteByte('\n')
		}
		return out.Flush()
	})
}

func parseSortKey(spec string) (sortKey, error) {
	startSpec, endSpec, hasEnd := strings.Cut(spec, ",")
	field := func(s string) (int, error) {
		// Character offsets and per-key modifiers are accepted and ignored.
		s, _, _ = strings.Cut(s, ".")
		s = strings.TrimRight(s, "bdfgiMnrR")
		return strconv.Atoi(s)
	}
	start, err := field(startSpec)
	if err != nil || start < 1 {
		return sortKey{}, fmt.Errorf("invalid key '%s'", spec)
	}
	k := sortKey{start: start}
	if hasEnd {
		end, err := field(endSpec)
		if err != nil || end < start {
			return sortKey{}, fmt.Errorf("invalid key '%s'", spec)
		}
		k.end = end
	}
	return k, nil
}

func sortLines(lines []string, opts *sortOptions) {
	cmp := func(a, b string) int {
		c := opts.compare(a, b)
		if c == 0 && !opts.stable && !opts.unique {
			c = strings.Compare(a, b)
		}
		if opts.reverse {
			return -c
		}
		return c
	}
	slices.SortStableFunc(lines, cmp)
}

// compare orders two lines by the configured keys.
func (o *sortOptions) compare(a, b string) int {
	if len(o.keys) == 0 {
		return o.compareField(a, b)
	}
	for _, k := range o.keys {
		if c := o.compareField(o.extract(a, k), o.extract(b, k)); c != 0 {
			return c
		}
	}
	return 0
}

func (o *sortOptions) compareField(a, b string) int {
	if o.blanks {
		a = strings.TrimLeft(a, " \t")
		b = strings.TrimLeft(b, " \t")
	}
	if o.numeric {
		na, nb := leadingNumber(a), leadingNumber(b)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	if o.fold {
		a, b = strings.ToUpper(a), strings.ToUpper(b)
	}
	return strings.Compare(a, b)
}

// extract returns the text of key k in line.
func (o *sortOptions) extract(line string, k sortKey) string {
	var fields []string
	if o.sep != "" {
		fields = strings.Split(line, o.sep)
	} else {
		fields = strings.Fields(line)
	}
	if k.start > len(fields) {
		return ""
	}
	end := len(fields)
	if k.end > 0 {
		end = min(k.end, len(fields))
	}
	join := o.sep
	if join == "" {
		join = " "
	}
	return strings.Join(fields[k.start-1:end], join)
}

// leadingNumber parses the numeric prefix of s; lines without one sort as 0.
func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || (i == 0 && (c == '-' || c == '+')) {
			end = i + 1
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
