// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown returns a reference of every applet in l: a summary table
// followed by one section per applet with its help text.
func Markdown(l Lister) string {
	descs := l.All()

	var b strings.Builder
	b.WriteString("# shellbox applets\n\n")
	fmt.Fprintf(&b, "%d applets in this build.\n\n", len(descs))
	b.WriteString("| Applet | Implementation | Location | Privilege |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, d := range descs {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", d.Name, d.Impl, d.Location, d.SUID)
	}
	for _, d := range descs {
		fmt.Fprintf(&b, "\n## %s\n\n```\n%s```\n", d.Name, Format(d.Name, d.Usage))
	}
	return b.String()
}

// Render renders Markdown for a terminal. An empty style picks one from
// the terminal background; width 0 disables wrapping.
func Render(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if style != "" {
		opts = []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(md)
}
