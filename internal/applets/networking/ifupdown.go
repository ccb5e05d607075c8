// SPDX-License-Identifier: MPL-2.0

package networking

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
	"github.com/shellbox/shellbox/internal/applets/shell"
)

const (
	defaultInterfacesPath = "/etc/network/interfaces"
	defaultStatePath      = "/var/run/ifstate"
)

type (
	// runFunc runs one shell command line with extra environment entries.
	runFunc func(ctx context.Context, stdio *applet.IO, command string, env []string) error

	ifupdown struct {
		stdio     *applet.IO
		name      string
		up        bool
		noAct     bool
		verbose   bool
		statePath string
		run       runFunc
	}
)

// IfUpDown brings interfaces up when invoked as ifup and down as ifdown.
func IfUpDown(ctx context.Context, argv []string) int {
	t := &ifupdown{
		stdio:     applet.IOFrom(ctx),
		name:      applet.Name(ctx, argv[0]),
		up:        filepath.Base(argv[0]) != "ifdown",
		statePath: defaultStatePath,
		run:       shell.RunScript,
	}
	return t.report(ctx, argv[1:])
}

func (t *ifupdown) report(ctx context.Context, args []string) int {
	return appletutil.Report(ctx, t.name, t.main(ctx, args))
}

func (t *ifupdown) main(ctx context.Context, args []string) error {
	fs := appletutil.NewFlagSet(t.name)
	all := fs.BoolP("all", "a", false, "all auto interfaces")
	file := fs.StringP("interfaces", "i", defaultInterfacesPath, "interfaces file")
	fs.BoolVarP(&t.noAct, "no-act", "n", false, "print commands only")
	noMappings := fs.BoolP("no-mappings", "m", false, "skip mappings")
	fs.BoolVarP(&t.verbose, "verbose", "v", false, "print commands")
	force := fs.BoolP("force", "f", false, "ignore state")
	if err := appletutil.Parse(fs, args); err != nil {
		return err
	}
	targets := fs.Args()
	if !*all && len(targets) == 0 {
		return &appletutil.UsageError{}
	}

	cfg, err := t.readInterfaces(ctx, *file)
	if err != nil {
		return err
	}
	state, err := loadState(t.statePath)
	if err != nil {
		return err
	}

	if *all {
		if t.up {
			targets = cfg.Auto
		} else {
			targets = nil
			for _, e := range slices.Backward(state) {
				targets = append(targets, e.iface)
			}
		}
	}

	failed, changed := false, false
	for _, target := range targets {
		iface, logical, explicit := strings.Cut(target, "=")
		if !explicit {
			logical = iface
		}

		current, configured := state.find(iface)
		if t.up {
			if configured && !*force {
				applet.Errorf(ctx, t.name, "interface %s already configured", iface)
				continue
			}
			if !explicit && !*noMappings {
				logical, err = t.mapLogical(ctx, cfg, iface)
				if err != nil {
					applet.Errorf(ctx, t.name, "%v", err)
					failed = true
					continue
				}
			}
		} else {
			if !configured && !*force {
				applet.Errorf(ctx, t.name, "interface %s not configured", iface)
				continue
			}
			if configured && !explicit {
				logical = current.logical
			}
		}

		stanzas := cfg.Find(logical)
		if len(stanzas) == 0 {
			applet.Errorf(ctx, t.name, "ignoring unknown interface %s", logical)
			failed = true
			continue
		}

		if err := t.runIface(ctx, stanzas, iface, logical); err != nil {
			applet.Errorf(ctx, t.name, "%v", err)
			failed = true
			continue
		}

		if t.up {
			state = state.set(iface, logical)
		} else {
			state = state.remove(iface)
		}
		changed = true
	}

	if changed && !t.noAct {
		if err := saveState(t.statePath, state); err != nil {
			return err
		}
	}
	if failed {
		return appletutil.Status(1)
	}
	return nil
}

func (t *ifupdown) readInterfaces(ctx context.Context, file string) (*Interfaces, error) {
	f, err := os.Open(applet.Path(ctx, file))
	if err != nil {
		return nil, appletutil.Statusf(1, "%s: %v", file, appletutil.Cause(err))
	}
	defer f.Close()

	cfg, err := ParseInterfaces(f)
	if err != nil {
		return nil, appletutil.Statusf(1, "%s: %v", file, err)
	}
	return cfg, nil
}

// mapLogical runs the first mapping that matches iface. The script gets
// iface as its argument and the map lines on stdin; its output names the
// logical interface.
func (t *ifupdown) mapLogical(ctx context.Context, cfg *Interfaces, iface string) (string, error) {
	for _, m := range cfg.Mappings {
		if !matchAny(m.Match, iface) || m.Script == "" {
			continue
		}
		if t.verbose || t.noAct {
			fmt.Fprintf(t.stdio.Stdout, "running mapping script %s on %s\n", m.Script, iface)
		}
		if t.noAct {
			return iface, nil
		}

		var out bytes.Buffer
		stdio := *t.stdio
		stdio.Stdin = strings.NewReader(strings.Join(m.Map, "\n") + "\n")
		stdio.Stdout = &out
		if err := t.run(ctx, &stdio, m.Script+" "+iface, nil); err != nil {
			return "", fmt.Errorf("mapping script %s: %w", m.Script, err)
		}
		if logical := strings.TrimSpace(out.String()); logical != "" {
			return logical, nil
		}
		return iface, nil
	}
	return iface, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// runIface runs the phases of every stanza of logical on iface.
func (t *ifupdown) runIface(ctx context.Context, stanzas []*Iface, iface, logical string) error {
	for _, st := range stanzas {
		m, err := lookupMethod(st)
		if err != nil {
			return fmt.Errorf("%s: %w", logical, err)
		}
		vars, err := variables(st, iface)
		if err != nil {
			return err
		}

		type phase struct {
			name     string
			commands []string
			method   bool
		}
		var phases []phase
		if t.up {
			phases = []phase{
				{name: "pre-up", commands: st.All("pre-up")},
				{name: "up", method: true},
				{name: "post-up", commands: st.All("up", "post-up")},
			}
		} else {
			phases = []phase{
				{name: "pre-down", commands: st.All("down", "pre-down")},
				{name: "down", method: true},
				{name: "post-down", commands: st.All("post-down")},
			}
		}

		for _, ph := range phases {
			commands := ph.commands
			if ph.method {
				templates := m.up
				if !t.up {
					templates = m.down
				}
				commands = make([]string, 0, len(templates))
				for _, tmpl := range templates {
					cmd, ok := expand(tmpl, vars)
					if !ok {
						return fmt.Errorf("%s: missing parameter for %q", logical, tmpl)
					}
					if cmd != "" {
						commands = append(commands, cmd)
					}
				}
			}

			env := t.environ(st, iface, logical, ph.name)
			for _, cmd := range commands {
				if t.verbose || t.noAct {
					fmt.Fprintln(t.stdio.Stdout, cmd)
				}
				if t.noAct {
					continue
				}
				if err := t.run(ctx, t.stdio, cmd, env); err != nil {
					direction := "up"
					if !t.up {
						direction = "down"
					}
					return fmt.Errorf("failed to bring %s %s: %w", direction, iface, err)
				}
			}
		}
	}
	return nil
}

// environ returns the variables exported to interface commands.
func (t *ifupdown) environ(st *Iface, iface, logical, phase string) []string {
	mode := "start"
	if !t.up {
		mode = "stop"
	}
	verbosity := "0"
	if t.verbose {
		verbosity = "1"
	}
	env := []string{
		"IFACE=" + iface,
		"LOGICAL=" + logical,
		"ADDRFAM=" + st.Family,
		"METHOD=" + st.Method,
		"MODE=" + mode,
		"PHASE=" + phase,
		"VERBOSITY=" + verbosity,
	}
	for _, o := range st.Options {
		switch o.Key {
		case "pre-up", "up", "post-up", "down", "pre-down", "post-down":
			continue
		}
		key := strings.ToUpper(strings.Map(func(r rune) rune {
			if r == '-' {
				return '_'
			}
			return r
		}, o.Key))
		env = append(env, "IF_"+key+"="+o.Value)
	}
	return env
}
