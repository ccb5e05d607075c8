// SPDX-License-Identifier: MPL-2.0

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"golang.org/x/exp/maps"

	"github.com/shellbox/shellbox/internal/cueutil"
)

//go:embed schema.cue
var schemaSource string

var errSelection = errors.New("invalid applet selection")

type (
	impl struct {
		Pkg   string `json:"pkg"`
		Fn    string `json:"fn"`
		Style string `json:"style"`
	}

	entry struct {
		Name  string `json:"name"`
		Impl  string `json:"impl"`
		Dir   string `json:"dir"`
		SUID  string `json:"suid"`
		Usage string `json:"usage"`
	}

	manifest struct {
		Impls   map[string]impl `json:"impls"`
		Applets []entry         `json:"applets"`
	}

	profile struct {
		All     bool
		Enable  []string
		Disable []string
	}

	// selected is one applet that goes into the generated table.
	selected struct {
		entry
		impl
	}
)

// loadManifest compiles a manifest file against #Manifest.
func loadManifest(path string) (*manifest, error) {
	v, err := compileAgainst(path, "#Manifest")
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := v.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}

// loadProfile compiles a profile file against #Profile.
func loadProfile(path string) (*profile, error) {
	v, err := compileAgainst(path, "#Profile")
	if err != nil {
		return nil, err
	}

	var p profile
	enable := v.LookupPath(cue.ParsePath("enable"))
	if s, err := enable.String(); err == nil {
		p.All = s == "all"
	} else if err := enable.Decode(&p.Enable); err != nil {
		return nil, fmt.Errorf("decode profile %s: enable: %w", path, err)
	}
	if err := v.LookupPath(cue.ParsePath("disable")).Decode(&p.Disable); err != nil {
		return nil, fmt.Errorf("decode profile %s: disable: %w", path, err)
	}
	return &p, nil
}

func compileAgainst(path, def string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("read %s: %w", path, err)
	}
	return cueutil.Compile(schemaSource, data, path, def)
}

// selectApplets applies the profile and the extra enable/disable lists to the
// manifest and returns the chosen applets in name order.
func selectApplets(m *manifest, p *profile, enable, disable []string) ([]selected, error) {
	byName := make(map[string]entry, len(m.Applets))
	for _, e := range m.Applets {
		if _, dup := byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: applet %q listed twice in manifest", errSelection, e.Name)
		}
		byName[e.Name] = e
	}

	want := make(map[string]bool)
	switch {
	case p == nil || p.All:
		for _, e := range m.Applets {
			if _, ok := m.Impls[e.Impl]; ok {
				want[e.Name] = true
			}
		}
	default:
		for _, name := range p.Enable {
			want[name] = true
		}
	}
	for _, name := range enable {
		want[name] = true
	}
	if p != nil {
		for _, name := range p.Disable {
			delete(want, name)
		}
	}
	for _, name := range disable {
		delete(want, name)
	}

	var problems []string
	out := make([]selected, 0, len(want))
	names := maps.Keys(want)
	slices.Sort(names)
	for _, name := range names {
		e, ok := byName[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown applet %q", name))
			continue
		}
		im, ok := m.Impls[e.Impl]
		if !ok {
			problems = append(problems, fmt.Sprintf("applet %q: no implementation for %q", name, e.Impl))
			continue
		}
		out = append(out, selected{entry: e, impl: im})
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", errSelection, strings.Join(problems, "\n  "))
	}
	return out, nil
}

// splitList parses a comma separated flag value.
func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
