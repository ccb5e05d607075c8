// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/registry"
)

func nop(context.Context, []string) int { return 0 }

func fixture(t *testing.T) *registry.Registry {
	t.Helper()

	reg, err := registry.New([]applet.Descriptor{
		{
			Name: "[", Impl: "test", Entry: applet.Main(nop),
			Location: applet.DirUsrBin, SUID: applet.SUIDDrop,
			Usage: "[ EXPRESSION ]\n\nCheck file types",
		},
		{
			Name: "crontab", Impl: "crontab", Entry: applet.Main(nop),
			Location: applet.DirUsrBin, SUID: applet.SUIDRequire,
			Usage: "[-c DIR] [-u USER] [-ler]|[FILE]\n\nMaintain crontab files for individual users",
		},
		{
			Name: "echo", Impl: "echo", Entry: applet.Main(nop),
			Location: applet.DirBin, SUID: applet.SUIDDrop,
			Usage: "[-neE] [ARG]...",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text, want string
	}{
		{"echo", "[-neE] [ARG]...", "Usage: echo [-neE] [ARG]...\n"},
		{"true", "", "Usage: true\n"},
		{"cat", "[FILE]...\n\nPrint FILEs to stdout\n", "Usage: cat [FILE]...\n\nPrint FILEs to stdout\n"},
		{"wc", "[-l] [FILE]...\n\n\t-l\tCount lines", "Usage: wc [-l] [FILE]...\n\n\t-l\tCount lines\n"},
	}
	for _, tt := range tests {
		if got := Format(tt.name, tt.text); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteHelp(t *testing.T) {
	t.Parallel()

	reg := fixture(t)
	var buf bytes.Buffer
	if err := WriteHelp(&buf, reg, "crontab"); err != nil {
		t.Fatal(err)
	}
	goldie.New(t).Assert(t, "help_crontab", buf.Bytes())

	err := WriteHelp(&buf, reg, "nope")
	var nf *NotFoundError
	if !errors.As(err, &nf) || err.Error() != "nope: applet not found" {
		t.Errorf("WriteHelp(nope) error = %v", err)
	}
}

func TestWriteList(t *testing.T) {
	t.Parallel()

	reg := fixture(t)
	g := goldie.New(t)

	var names, full bytes.Buffer
	if err := WriteList(&names, reg, false); err != nil {
		t.Fatal(err)
	}
	if err := WriteList(&full, reg, true); err != nil {
		t.Fatal(err)
	}
	g.Assert(t, "list", names.Bytes())
	g.Assert(t, "list_full", full.Bytes())
}

func TestWriteOverview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteOverview(&buf, fixture(t), 12); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "Currently defined functions:\n\t[, crontab,\n\techo\n") {
		t.Errorf("overview = %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), Banner()+"\n\nUsage: shellbox [function [arguments]...]\n") {
		t.Errorf("overview = %q", buf.String())
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	goldie.New(t).Assert(t, "docs", []byte(Markdown(fixture(t))))
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Render(Markdown(fixture(t)), "notty", 80)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"shellbox applets", "crontab", "Usage: echo [-neE] [ARG]..."} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered docs missing %q", want)
		}
	}
}

func TestDefaultRegistryDocs(t *testing.T) {
	t.Parallel()

	reg := registry.Default()
	md := Markdown(reg)
	for _, name := range reg.Names() {
		if !strings.Contains(md, "\n## "+name+"\n") {
			t.Errorf("docs have no section for %q", name)
		}
	}
}
