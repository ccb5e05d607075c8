// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"fmt"
	"io"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
)

// Version is printed in the help banner. Builds set it with -ldflags.
var Version = "dev"

type (
	// Provider looks up usage text by applet name. *registry.Registry
	// satisfies it.
	Provider interface {
		Usage(name string) (string, bool)
	}

	// Lister enumerates applets in name order. *registry.Registry
	// satisfies it.
	Lister interface {
		All() []applet.Descriptor
	}

	// NotFoundError is returned by WriteHelp for unknown applets.
	NotFoundError struct {
		Name string
	}
)

func (e *NotFoundError) Error() string {
	return e.Name + ": applet not found"
}

// Banner is the first line of every help page.
func Banner() string {
	return fmt.Sprintf("shellbox %s multi-call binary.", Version)
}

// Format renders usage text as shown by --help: "Usage: <name> <synopsis>"
// followed by the remaining lines.
func Format(name, text string) string {
	synopsis, rest, _ := strings.Cut(text, "\n")
	var b strings.Builder
	b.WriteString("Usage: " + name)
	if synopsis != "" {
		b.WriteString(" " + synopsis)
	}
	b.WriteByte('\n')
	if rest != "" {
		b.WriteString(rest)
		if !strings.HasSuffix(rest, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteHelp writes the banner and the formatted usage of name.
func WriteHelp(w io.Writer, p Provider, name string) error {
	text, ok := p.Usage(name)
	if !ok {
		return &NotFoundError{Name: name}
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s", Banner(), Format(name, text))
	return err
}

// WriteList writes one applet per line: names, or with full the install
// path relative to the root ("usr/bin/[").
func WriteList(w io.Writer, l Lister, full bool) error {
	var b strings.Builder
	for _, d := range l.All() {
		if full {
			b.WriteString(strings.TrimPrefix(d.InstallPath(), "/"))
		} else {
			b.WriteString(d.Name)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteOverview is the management help: the banner, how to invoke applets
// and the applet names wrapped to width columns.
func WriteOverview(w io.Writer, l Lister, width int) error {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(Banner())
	b.WriteString(`

Usage: shellbox [function [arguments]...]
   or: shellbox --list[-full]
   or: shellbox --install [-s] [DIR]
   or: function [arguments]...

	shellbox combines many common Unix utilities into a single
	executable. Create links to shellbox under the applet names,
	or run an applet as the first argument.

Currently defined functions:
`)
	line := "\t"
	descs := l.All()
	for i, d := range descs {
		word := d.Name
		if i < len(descs)-1 {
			word += ","
		}
		if len(line) > 1 && len(line)+1+len(word) > width {
			b.WriteString(line + "\n")
			line = "\t"
		}
		if len(line) > 1 {
			line += " "
		}
		line += word
	}
	if len(line) > 1 {
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
