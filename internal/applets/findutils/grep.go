// SPDX-License-Identifier: MPL-2.0

package findutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// grepOptions is the parsed command line of one grep invocation.
type grepOptions struct {
	withName, noName, lineNumbers, filesWith, filesWithout bool
	count, onlyMatching, quiet, invert, silent             bool
	ignoreCase, words, wholeLines, fixed, extended         bool
	maxCount, after, before                                int
	patterns, patternFiles                                 []string
}

// grepMatcher finds matches of the compiled pattern set in one line.
type grepMatcher struct {
	re     *regexp.Regexp
	invert bool
}

func (m *grepMatcher) selected(line string) bool {
	return m.re.MatchString(line) != m.invert
}

// Grep implements grep, egrep and fgrep. Exit status is 0 when a line was
// selected, 1 when none was, and 2 on errors.
func Grep(ctx context.Context, argv []string) int {
	name := argv[0]
	opts, operands, err := parseGrep(ctx, name, argv[1:])
	if err != nil {
		code := appletutil.Report(ctx, name, err)
		if code == 1 {
			code = 2
		}
		return code
	}

	m, err := compileGrep(opts)
	if err != nil {
		applet.Errorf(ctx, name, "%v", err)
		return 2
	}

	stdio := applet.IOFrom(ctx)
	out := bufio.NewWriter(stdio.Stdout)
	defer out.Flush()

	showName := opts.withName || len(operands) > 1
	if opts.noName {
		showName = false
	}

	matched, failed := false, false
	if len(operands) == 0 {
		operands = []string{"-"}
	}
	for _, file := range operands {
		var r io.Reader = stdio.Stdin
		var f *os.File
		if file != "-" {
			f, err = os.Open(applet.Path(ctx, file))
			if err != nil {
				if !opts.silent {
					applet.Errorf(ctx, name, "%s: %v", file, appletutil.Cause(err))
				}
				failed = true
				continue
			}
			r = f
		}
		label := file
		if file == "-" {
			label = "(standard input)"
		}

		found, err := grepReader(out, r, label, showName, m, &opts)
		if f != nil {
			f.Close()
		}
		if err != nil {
			if !opts.silent {
				applet.Errorf(ctx, name, "%s: %v", file, err)
			}
			failed = true
			continue
		}
		if found {
			matched = true
			if opts.quiet {
				return 0
			}
		}
	}

	switch {
	case failed && !(opts.quiet && matched):
		return 2
	case matched:
		return 0
	default:
		return 1
	}
}

func parseGrep(ctx context.Context, name string, args []string) (grepOptions, []string, error) {
	var o grepOptions
	fs := appletutil.NewFlagSet(name)
	fs.BoolVarP(&o.withName, "with-filename", "H", false, "add 'filename:' prefix")
	fs.BoolVarP(&o.noName, "no-filename", "h", false, "do not add 'filename:' prefix")
	fs.BoolVarP(&o.lineNumbers, "line-number", "n", false, "add 'line_no:' prefix")
	fs.BoolVarP(&o.filesWith, "files-with-matches", "l", false, "show only names of files that match")
	fs.BoolVarP(&o.filesWithout, "files-without-match", "L", false, "show only names of files that don't match")
	fs.BoolVarP(&o.count, "count", "c", false, "show only count of matching lines")
	fs.BoolVarP(&o.onlyMatching, "only-matching", "o", false, "show only the matching part of line")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "quiet")
	fs.BoolVarP(&o.invert, "invert-match", "v", false, "select non-matching lines")
	fs.BoolVarP(&o.silent, "no-messages", "s", false, "suppress open and read errors")
	fs.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "ignore case")
	fs.BoolVarP(&o.words, "word-regexp", "w", false, "match whole words only")
	fs.BoolVarP(&o.wholeLines, "line-regexp", "x", false, "match whole lines only")
	fs.BoolVarP(&o.fixed, "fixed-strings", "F", name == "fgrep", "PATTERN is a literal")
	fs.BoolVarP(&o.extended, "extended-regexp", "E", name == "egrep", "PATTERN is an extended regexp")
	fs.IntVarP(&o.maxCount, "max-count", "m", -1, "match up to N times per file")
	fs.IntVarP(&o.after, "after-context", "A", 0, "print N lines of trailing context")
	fs.IntVarP(&o.before, "before-context", "B", 0, "print N lines of leading context")
	contextLines := fs.IntP("context", "C", 0, "print N lines of context")
	fs.StringArrayVarP(&o.patterns, "regexp", "e", nil, "pattern to match")
	fs.StringArrayVarP(&o.patternFiles, "file", "f", nil, "read patterns from FILE")
	if err := appletutil.Parse(fs, args); err != nil {
		return o, nil, err
	}
	if *contextLines > 0 {
		o.after = max(o.after, *contextLines)
		o.before = max(o.before, *contextLines)
	}

	for _, file := range o.patternFiles {
		data, err := os.ReadFile(applet.Path(ctx, file))
		if err != nil {
			return o, nil, fmt.Errorf("%s: %w", file, appletutil.Cause(err))
		}
		o.patterns = append(o.patterns, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")...)
	}

	operands := fs.Args()
	if len(o.patterns) == 0 {
		if len(operands) == 0 {
			return o, nil, appletutil.ErrUsage
		}
		o.patterns, operands = []string{operands[0]}, operands[1:]
	}
	return o, operands, nil
}

// compileGrep joins all patterns into one regexp. Basic regular
// expressions are rewritten into the RE2 syntax first.
func compileGrep(o grepOptions) (*grepMatcher, error) {
	alts := make([]string, 0, len(o.patterns))
	for _, p := range o.patterns {
		switch {
		case o.fixed:
			p = regexp.QuoteMeta(p)
		case !o.extended:
			p = breToERE(p)
		}
		if o.wholeLines {
			p = "^(?:" + p + ")$"
		} else if o.words {
			p = `(?:^|\b)(?:` + p + `)(?:\b|$)`
		}
		alts = append(alts, "(?:"+p+")")
	}
	expr := strings.Join(alts, "|")
	if o.ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		var se *regexp.Error
		if errors.As(err, &se) {
			return nil, fmt.Errorf("bad regex '%s': %s", strings.Join(o.patterns, "\n"), se.Code)
		}
		return nil, err
	}
	return &grepMatcher{re: re, invert: o.invert}, nil
}

// breToERE converts POSIX basic regular expression syntax: \( \) \{ \}
// \| \+ \? become operators and their bare forms become literals.
func breToERE(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			i++
			switch n := p[i]; n {
			case '(', ')', '{', '}', '|', '+', '?':
				b.WriteByte(n)
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
		case c == '(' || c == ')' || c == '{' || c == '}' || c == '|' || c == '+' || c == '?':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '*' && (i == 0 || (i == 1 && p[0] == '^')):
			b.WriteString(`\*`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// grepReader scans one input and reports whether any line was selected.
func grepReader(w *bufio.Writer, r io.Reader, label string, showName bool, m *grepMatcher, o *grepOptions) (bool, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	listing := o.filesWith || o.filesWithout || o.count || o.quiet
	prefix := func(lineNo int, sep byte) {
		if showName {
			w.WriteString(label)
			w.WriteByte(sep)
		}
		if o.lineNumbers {
			fmt.Fprintf(w, "%d%c", lineNo, sep)
		}
	}

	var (
		matches    int
		lineNo     int
		afterLeft  int
		lastPrint  int
		before     []string
		beforeFrom int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if o.maxCount >= 0 && matches >= o.maxCount {
			if afterLeft > 0 && !m.selected(line) {
				prefix(lineNo, '-')
				w.WriteString(line)
				w.WriteByte('\n')
				afterLeft--
				continue
			}
			break
		}

		if !m.selected(line) {
			if afterLeft > 0 && !listing {
				prefix(lineNo, '-')
				w.WriteString(line)
				w.WriteByte('\n')
				lastPrint = lineNo
				afterLeft--
			} else if o.before > 0 {
				if len(before) == o.before {
					before = before[1:]
					beforeFrom++
				}
				if len(before) == 0 {
					beforeFrom = lineNo
				}
				before = append(before, line)
			}
			continue
		}

		matches++
		if listing {
			if o.quiet || o.filesWith || o.filesWithout {
				break
			}
			continue
		}

		if (o.before > 0 || o.after > 0) && lastPrint > 0 && lineNo-len(before) > lastPrint+1 {
			w.WriteString("--\n")
		}
		for i, ctxLine := range before {
			prefix(beforeFrom+i, '-')
			w.WriteString(ctxLine)
			w.WriteByte('\n')
		}
		before = before[:0]

		if o.onlyMatching && !o.invert {
			for _, part := range m.re.FindAllString(line, -1) {
				if part == "" {
					continue
				}
				prefix(lineNo, ':')
				w.WriteString(part)
				w.WriteByte('\n')
			}
		} else {
			prefix(lineNo, ':')
			w.WriteString(line)
			w.WriteByte('\n')
		}
		lastPrint = lineNo
		afterLeft = o.after
	}
	if err := sc.Err(); err != nil {
		return matches > 0, err
	}

	switch {
	case o.quiet:
	case o.filesWith:
		if matches > 0 {
			fmt.Fprintln(w, label)
		}
	case o.filesWithout:
		if matches == 0 {
			fmt.Fprintln(w, label)
		}
	case o.count:
		if showName {
			fmt.Fprintf(w, "%s:", label)
		}
		fmt.Fprintln(w, matches)
	}
	return matches > 0, nil
}
