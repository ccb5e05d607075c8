// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"testing"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/applettest"
)

// textCase runs one applet against stdin and optional files in a fresh
// directory.
type textCase struct {
	name       string
	entry      applet.Main
	argv       []string
	stdin      string
	files      map[string]string
	wantOut    string
	wantCode   int
	wantStderr string
}

func runTextCases(t *testing.T, tests []textCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tt.files {
				applettest.WriteFile(t, dir, name, content)
			}
			res := applettest.Run(t, tt.entry, applettest.Options{Dir: dir, Stdin: tt.stdin, Usage: "USAGE"}, tt.argv...)
			if res.Code != tt.wantCode {
				t.Fatalf("%q exit = %d, want %d (stderr %q)", tt.argv, res.Code, tt.wantCode, res.Stderr)
			}
			if res.Stdout != tt.wantOut {
				t.Errorf("%q stdout = %q, want %q", tt.argv, res.Stdout, tt.wantOut)
			}
			if tt.wantStderr != "" && res.Stderr != tt.wantStderr {
				t.Errorf("%q stderr = %q, want %q", tt.argv, res.Stderr, tt.wantStderr)
			}
		})
	}
}

const twelve = "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n"

func TestHead(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "default ten", entry: Head, argv: []string{"head"}, stdin: twelve, wantOut: "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"},
		{name: "n attached", entry: Head, argv: []string{"head", "-n2"}, stdin: twelve, wantOut: "1\n2\n"},
		{name: "bytes", entry: Head, argv: []string{"head", "-c", "3"}, stdin: "abcdef", wantOut: "abc"},
		{name: "no final newline", entry: Head, argv: []string{"head", "-n", "5"}, stdin: "a\nb", wantOut: "a\nb"},
		{
			name: "headers for several files", entry: Head, argv: []string{"head", "-n1", "a", "b"},
			files:   map[string]string{"a": "A1\nA2\n", "b": "B1\n"},
			wantOut: "==> a <==\nA1\n\n==> b <==\nB1\n",
		},
		{
			name: "quiet", entry: Head, argv: []string{"head", "-qn1", "a", "b"},
			files:   map[string]string{"a": "A1\n", "b": "B1\n"},
			wantOut: "A1\nB1\n",
		},
		{
			name: "missing file continues", entry: Head, argv: []string{"head", "nope", "a"},
			files:      map[string]string{"a": "A\n"},
			wantOut:    "==> a <==\nA\n",
			wantCode:   1,
			wantStderr: "head: nope: no such file or directory\n",
		},
		{name: "bad count", entry: Head, argv: []string{"head", "-n", "x"}, wantCode: 1, wantStderr: "head: invalid number 'x'\n"},
		{name: "bad option", entry: Head, argv: []string{"head", "-z"}, wantCode: 1},
	})
}

func TestTail(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "default ten", entry: Tail, argv: []string{"tail"}, stdin: twelve, wantOut: "3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n"},
		{name: "last two", entry: Tail, argv: []string{"tail", "-n", "2"}, stdin: twelve, wantOut: "11\n12\n"},
		{name: "from line", entry: Tail, argv: []string{"tail", "-n", "+11"}, stdin: twelve, wantOut: "11\n12\n"},
		{name: "no final newline", entry: Tail, argv: []string{"tail", "-n1"}, stdin: "a\nb", wantOut: "b"},
		{name: "bytes", entry: Tail, argv: []string{"tail", "-c", "3"}, stdin: "abcdef", wantOut: "def"},
		{name: "bytes from start", entry: Tail, argv: []string{"tail", "-c", "+3"}, stdin: "abcdef", wantOut: "cdef"},
		{name: "more than available", entry: Tail, argv: []string{"tail", "-n", "50"}, stdin: "a\nb\n", wantOut: "a\nb\n"},
	})
}

func TestWc(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "lines only is bare", entry: Wc, argv: []string{"wc", "-l"}, stdin: "a b\nc\n", wantOut: "2\n"},
		{name: "default columns", entry: Wc, argv: []string{"wc"}, stdin: "a b\nc\n", wantOut: "      2       3       6\n"},
		{name: "chars vs bytes", entry: Wc, argv: []string{"wc", "-mc"}, stdin: "héllo", wantOut: "      5       6\n"},
		{name: "longest line", entry: Wc, argv: []string{"wc", "-L"}, stdin: "ab\nabcd\n", wantOut: "4\n"},
		{
			name: "files and total", entry: Wc, argv: []string{"wc", "-l", "a", "b"},
			files:   map[string]string{"a": "1\n2\n", "b": "3\n"},
			wantOut: "      2 a\n      1 b\n      3 total\n",
		},
	})
}

func TestSeq(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "last only", entry: Seq, argv: []string{"seq", "3"}, wantOut: "1\n2\n3\n"},
		{name: "first last", entry: Seq, argv: []string{"seq", "2", "4"}, wantOut: "2\n3\n4\n"},
		{name: "increment", entry: Seq, argv: []string{"seq", "1", "2", "6"}, wantOut: "1\n3\n5\n"},
		{name: "negative", entry: Seq, argv: []string{"seq", "-1", "1"}, wantOut: "-1\n0\n1\n"},
		{name: "descending", entry: Seq, argv: []string{"seq", "3", "-1", "1"}, wantOut: "3\n2\n1\n"},
		{name: "separator", entry: Seq, argv: []string{"seq", "-s", ",", "3"}, wantOut: "1,2,3\n"},
		{name: "equal width", entry: Seq, argv: []string{"seq", "-w", "8", "10"}, wantOut: "08\n09\n10\n"},
		{name: "fractions", entry: Seq, argv: []string{"seq", "0", "0.5", "1"}, wantOut: "0.0\n0.5\n1.0\n"},
		{name: "empty range", entry: Seq, argv: []string{"seq", "5", "1"}, wantOut: ""},
		{name: "zero increment", entry: Seq, argv: []string{"seq", "1", "0", "2"}, wantCode: 1},
		{name: "no operands", entry: Seq, argv: []string{"seq"}, wantCode: 1, wantStderr: "Usage: seq USAGE\n"},
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "lexical", entry: Sort, argv: []string{"sort"}, stdin: "b\na\nc\n", wantOut: "a\nb\nc\n"},
		{name: "reverse", entry: Sort, argv: []string{"sort", "-r"}, stdin: "b\na\nc\n", wantOut: "c\nb\na\n"},
		{name: "numeric", entry: Sort, argv: []string{"sort", "-n"}, stdin: "10\n9\n-1\n", wantOut: "-1\n9\n10\n"},
		{name: "unique", entry: Sort, argv: []string{"sort", "-u"}, stdin: "b\na\nb\n", wantOut: "a\nb\n"},
		{name: "fold unique", entry: Sort, argv: []string{"sort", "-fu"}, stdin: "B\nb\na\n", wantOut: "a\nB\n"},
		{name: "key and separator", entry: Sort, argv: []string{"sort", "-t", ":", "-k", "2n"}, stdin: "x:3\ny:1\nz:2\n", wantOut: "y:1\nz:2\nx:3\n"},
		{name: "key whitespace", entry: Sort, argv: []string{"sort", "-k2"}, stdin: "a  z\nb y\n", wantOut: "b y\na  z\n"},
		{
			name: "several files", entry: Sort, argv: []string{"sort", "f1", "f2"},
			files:   map[string]string{"f1": "c\na\n", "f2": "b\n"},
			wantOut: "a\nb\nc\n",
		},
	})
}

func TestUniq(t *testing.T) {
	t.Parallel()

	in := "a\na\nb\nc\nc\nc\n"
	runTextCases(t, []textCase{
		{name: "collapse", entry: Uniq, argv: []string{"uniq"}, stdin: in, wantOut: "a\nb\nc\n"},
		{name: "count", entry: Uniq, argv: []string{"uniq", "-c"}, stdin: in, wantOut: "      2 a\n      1 b\n      3 c\n"},
		{name: "duplicates", entry: Uniq, argv: []string{"uniq", "-d"}, stdin: in, wantOut: "a\nc\n"},
		{name: "uniques", entry: Uniq, argv: []string{"uniq", "-u"}, stdin: in, wantOut: "b\n"},
		{name: "ignore case", entry: Uniq, argv: []string{"uniq", "-i"}, stdin: "A\na\n", wantOut: "A\n"},
		{name: "skip fields", entry: Uniq, argv: []string{"uniq", "-f", "1"}, stdin: "1 x\n2 x\n3 y\n", wantOut: "1 x\n3 y\n"},
		{name: "skip chars", entry: Uniq, argv: []string{"uniq", "-s", "1"}, stdin: "ax\nbx\n", wantOut: "ax\n"},
		{name: "input file", entry: Uniq, argv: []string{"uniq", "in"}, files: map[string]string{"in": "z\nz\n"}, wantOut: "z\n"},
	})
}

func TestTr(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "range", entry: Tr, argv: []string{"tr", "a-z", "A-Z"}, stdin: "hello", wantOut: "HELLO"},
		{name: "class", entry: Tr, argv: []string{"tr", "[:lower:]", "[:upper:]"}, stdin: "abc1", wantOut: "ABC1"},
		{name: "short set2 pads", entry: Tr, argv: []string{"tr", "abc", "x"}, stdin: "aabbcc", wantOut: "xxxxxx"},
		{name: "delete", entry: Tr, argv: []string{"tr", "-d", "0-9"}, stdin: "a1b2", wantOut: "ab"},
		{name: "squeeze", entry: Tr, argv: []string{"tr", "-s", " "}, stdin: "a   b  c", wantOut: "a b c"},
		{name: "complement delete", entry: Tr, argv: []string{"tr", "-cd", "a-z"}, stdin: "a-b_c!", wantOut: "abc"},
		{name: "escape", entry: Tr, argv: []string{"tr", `\n`, " "}, stdin: "a\nb\n", wantOut: "a b "},
		{name: "translate and squeeze", entry: Tr, argv: []string{"tr", "-s", "ab", "x"}, stdin: "aabbc", wantOut: "xc"},
		{name: "missing set2", entry: Tr, argv: []string{"tr", "a"}, wantCode: 1},
	})
}

func TestCut(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "fields", entry: Cut, argv: []string{"cut", "-d", ":", "-f", "1,3"}, stdin: "a:b:c:d\n", wantOut: "a:c\n"},
		{name: "field range open", entry: Cut, argv: []string{"cut", "-d:", "-f2-"}, stdin: "a:b:c\n", wantOut: "b:c\n"},
		{name: "list order ignored", entry: Cut, argv: []string{"cut", "-d:", "-f3,1"}, stdin: "a:b:c\n", wantOut: "a:c\n"},
		{name: "undelimited kept", entry: Cut, argv: []string{"cut", "-d:", "-f2"}, stdin: "plain\n", wantOut: "plain\n"},
		{name: "undelimited dropped", entry: Cut, argv: []string{"cut", "-s", "-d:", "-f2"}, stdin: "plain\nx:y\n", wantOut: "y\n"},
		{name: "bytes", entry: Cut, argv: []string{"cut", "-b", "2-3"}, stdin: "abcd\n", wantOut: "bc\n"},
		{name: "chars", entry: Cut, argv: []string{"cut", "-c", "-2"}, stdin: "héllo\n", wantOut: "hé\n"},
		{name: "tab default", entry: Cut, argv: []string{"cut", "-f", "2"}, stdin: "a\tb\n", wantOut: "b\n"},
		{name: "no list", entry: Cut, argv: []string{"cut"}, wantCode: 1},
		{name: "two lists", entry: Cut, argv: []string{"cut", "-b1", "-f1"}, wantCode: 1},
		{name: "bad list", entry: Cut, argv: []string{"cut", "-f", "0"}, wantCode: 1},
	})
}

func TestBasenameDirname(t *testing.T) {
	t.Parallel()

	runTextCases(t, []textCase{
		{name: "basename", entry: Basename, argv: []string{"basename", "/usr/lib/x.so"}, wantOut: "x.so\n"},
		{name: "basename suffix", entry: Basename, argv: []string{"basename", "/usr/lib/x.so", ".so"}, wantOut: "x\n"},
		{name: "basename suffix is whole", entry: Basename, argv: []string{"basename", ".so", ".so"}, wantOut: ".so\n"},
		{name: "basename trailing slash", entry: Basename, argv: []string{"basename", "a/b/"}, wantOut: "b\n"},
		{name: "basename root", entry: Basename, argv: []string{"basename", "///"}, wantOut: "/\n"},
		{name: "basename usage", entry: Basename, argv: []string{"basename"}, wantCode: 1},
		{name: "dirname", entry: Dirname, argv: []string{"dirname", "/usr/lib/x.so"}, wantOut: "/usr/lib\n"},
		{name: "dirname relative", entry: Dirname, argv: []string{"dirname", "x"}, wantOut: ".\n"},
		{name: "dirname trailing slashes", entry: Dirname, argv: []string{"dirname", "a/b//"}, wantOut: "a\n"},
		{name: "dirname top", entry: Dirname, argv: []string{"dirname", "/x"}, wantOut: "/\n"},
		{name: "dirname root", entry: Dirname, argv: []string{"dirname", "/"}, wantOut: "/\n"},
	})
}
