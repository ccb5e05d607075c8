// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/applettest"
)

func TestTest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	applettest.WriteFile(t, dir, "file", "data")
	applettest.WriteFile(t, dir, "empty", "")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("file", filepath.Join(dir, "link")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		argv []string
		want int
	}{
		{name: "no args", argv: []string{"test"}, want: 1},
		{name: "non-empty string", argv: []string{"test", "x"}, want: 0},
		{name: "empty string", argv: []string{"test", ""}, want: 1},
		{name: "negate", argv: []string{"test", "!", ""}, want: 0},
		{name: "-n", argv: []string{"test", "-n", "x"}, want: 0},
		{name: "-z", argv: []string{"test", "-z", "x"}, want: 1},
		{name: "string equal", argv: []string{"test", "a", "=", "a"}, want: 0},
		{name: "string not equal", argv: []string{"test", "a", "!=", "a"}, want: 1},
		{name: "operator as operand", argv: []string{"test", "!", "=", "x"}, want: 1},
		{name: "int lt", argv: []string{"test", "2", "-lt", "10"}, want: 0},
		{name: "int ge", argv: []string{"test", "2", "-ge", "10"}, want: 1},
		{name: "bad int", argv: []string{"test", "a", "-eq", "1"}, want: 2},
		{name: "file exists", argv: []string{"test", "-e", "file"}, want: 0},
		{name: "file missing", argv: []string{"test", "-e", "nope"}, want: 1},
		{name: "regular", argv: []string{"test", "-f", "file"}, want: 0},
		{name: "directory", argv: []string{"test", "-d", "sub"}, want: 0},
		{name: "dir is not regular", argv: []string{"test", "-f", "sub"}, want: 1},
		{name: "size", argv: []string{"test", "-s", "empty"}, want: 1},
		{name: "symlink", argv: []string{"test", "-L", "link"}, want: 0},
		{name: "readable", argv: []string{"test", "-r", "file"}, want: 0},
		{name: "and", argv: []string{"test", "-f", "file", "-a", "-d", "sub"}, want: 0},
		{name: "or", argv: []string{"test", "-f", "nope", "-o", "-d", "sub"}, want: 0},
		{name: "and binds tighter", argv: []string{"test", "x", "-o", "", "-a", ""}, want: 0},
		{name: "parens", argv: []string{"test", "(", "-n", "x", ")", "-a", "a", "=", "a"}, want: 0},
		{name: "four args negate", argv: []string{"test", "!", "a", "=", "b"}, want: 0},
		{name: "bracket", argv: []string{"[", "a", "=", "a", "]"}, want: 0},
		{name: "bracket missing close", argv: []string{"[", "a", "=", "a"}, want: 2},
		{name: "double bracket", argv: []string{"[[", "-d", "sub", "]]"}, want: 0},
		{name: "double bracket needs double close", argv: []string{"[[", "x", "]"}, want: 2},
		{name: "trailing garbage", argv: []string{"test", "a", "=", "a", "b", "c"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := applettest.Run(t, applet.Main(Test), applettest.Options{Dir: dir}, tt.argv...)
			if res.Code != tt.want {
				t.Errorf("%q exit = %d, want %d (stderr %q)", tt.argv, res.Code, tt.want, res.Stderr)
			}
		})
	}
}
