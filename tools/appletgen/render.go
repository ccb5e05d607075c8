// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

var locationConsts = map[string]string{
	"/":         "applet.DirRoot",
	"/bin":      "applet.DirBin",
	"/sbin":     "applet.DirSbin",
	"/usr/bin":  "applet.DirUsrBin",
	"/usr/sbin": "applet.DirUsrSbin",
}

var suidConsts = map[string]string{
	"drop":    "applet.SUIDDrop",
	"require": "applet.SUIDRequire",
	"maybe":   "applet.SUIDMaybe",
}

var tableTemplate = template.Must(template.New("table").Parse(`// SPDX-License-Identifier: MPL-2.0

// Code generated by appletgen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

import (
	"{{.Module}}/internal/applet"
{{range .Imports}}	"{{$.Module}}/internal/applets/{{.}}"
{{end}})

// table returns the applets of this build, sorted by name.
func table() []applet.Descriptor {
	return []applet.Descriptor{
{{- range .Applets}}
		{
			Name:     {{.Name}},
			Impl:     {{.Impl}},
			Entry:    {{.Entry}},
			Location: {{.Location}},
			SUID:     {{.SUID}},
			Usage:    {{.Usage}},
		},
{{- end}}
	}
}
`))

type (
	tableData struct {
		Source  string
		Package string
		Module  string
		Imports []string
		Applets []appletData
	}

	appletData struct {
		Name, Impl, Entry, Location, SUID, Usage string
	}
)

// render produces the gofmt'ed table source for the selected applets.
func render(pkg, module, source string, applets []selected) ([]byte, error) {
	data := tableData{Source: source, Package: pkg, Module: module}

	seen := make(map[string]bool)
	for _, a := range applets {
		if !seen[a.Pkg] {
			seen[a.Pkg] = true
			data.Imports = append(data.Imports, a.Pkg)
		}

		entry := fmt.Sprintf("applet.Main(%s.%s)", a.Pkg, a.Fn)
		if a.Style == "noreturn" {
			entry = fmt.Sprintf("applet.NoReturn(%s.%s)", a.Pkg, a.Fn)
		}
		data.Applets = append(data.Applets, appletData{
			Name:     strconv.Quote(a.Name),
			Impl:     strconv.Quote(a.entry.Impl),
			Entry:    entry,
			Location: locationConsts[a.Dir],
			SUID:     suidConsts[a.SUID],
			Usage:    goString(a.Usage),
		})
	}
	slices.Sort(data.Imports)

	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render table: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format table: %w", err)
	}
	return src, nil
}

// goString quotes s as a Go literal, preferring a raw string for multi-line
// usage text.
func goString(s string) string {
	if strings.Contains(s, "\n") && !strings.Contains(s, "`") && !strings.Contains(s, "\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
