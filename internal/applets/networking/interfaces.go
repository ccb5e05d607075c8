// SPDX-License-Identifier: MPL-2.0

package networking

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type (
	// Interfaces is a parsed interfaces(5) file.
	Interfaces struct {
		// Auto lists the interfaces named on "auto" lines, in file order.
		Auto []string
		// Ifaces holds the "iface" stanzas in file order.
		Ifaces []*Iface
		// Mappings holds the "mapping" stanzas in file order.
		Mappings []*Mapping
	}

	// Iface is one "iface NAME FAMILY METHOD" stanza.
	Iface struct {
		Name    string
		Family  string
		Method  string
		Options []Option
	}

	// Option is a "key value" line inside a stanza. Keys may repeat.
	Option struct {
		Key   string
		Value string
	}

	// Mapping selects a logical interface by running Script.
	Mapping struct {
		Match  []string
		Script string
		Map    []string
	}

	// ParseError reports a malformed line.
	ParseError struct {
		Line int
		Msg  string
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Get returns the last value of key.
func (i *Iface) Get(key string) (string, bool) {
	for n := len(i.Options) - 1; n >= 0; n-- {
		if i.Options[n].Key == key {
			return i.Options[n].Value, true
		}
	}
	return "", false
}

// All returns every value of the given keys in file order.
func (i *Iface) All(keys ...string) []string {
	var out []string
	for _, o := range i.Options {
		for _, k := range keys {
			if o.Key == k {
				out = append(out, o.Value)
				break
			}
		}
	}
	return out
}

// Find returns the stanzas of a logical interface, one per family.
func (f *Interfaces) Find(logical string) []*Iface {
	var out []*Iface
	for _, i := range f.Ifaces {
		if i.Name == logical {
			out = append(out, i)
		}
	}
	return out
}

// ParseInterfaces reads an interfaces(5) file. Backslash continues a line
// and "#" starts a comment only at the beginning of a line.
func ParseInterfaces(r io.Reader) (*Interfaces, error) {
	f := &Interfaces{}
	var (
		cur     *Iface
		mapping *Mapping
		pending string
		lineNo  int
		start   int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if pending == "" {
			start = lineNo
		}
		if strings.HasSuffix(line, "\\") {
			pending += strings.TrimSuffix(line, "\\")
			continue
		}
		line = strings.TrimSpace(pending + line)
		pending = ""

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "auto":
			f.Auto = append(f.Auto, fields[1:]...)
			cur, mapping = nil, nil
		case "allow-auto", "allow-hotplug":
			// allow-auto is a synonym of auto; hotplug classes are not
			// brought up by -a.
			if fields[0] == "allow-auto" {
				f.Auto = append(f.Auto, fields[1:]...)
			}
			cur, mapping = nil, nil
		case "iface":
			if len(fields) != 4 {
				return nil, &ParseError{Line: start, Msg: "too few parameters for iface line"}
			}
			cur = &Iface{Name: fields[1], Family: fields[2], Method: fields[3]}
			mapping = nil
			f.Ifaces = append(f.Ifaces, cur)
		case "mapping":
			if len(fields) < 2 {
				return nil, &ParseError{Line: start, Msg: "mapping needs at least one interface"}
			}
			mapping = &Mapping{Match: fields[1:]}
			cur = nil
			f.Mappings = append(f.Mappings, mapping)
		default:
			value := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
			switch {
			case cur != nil:
				if value == "" {
					return nil, &ParseError{Line: start, Msg: fmt.Sprintf("option %q has no value", fields[0])}
				}
				cur.Options = append(cur.Options, Option{Key: fields[0], Value: value})
			case mapping != nil && fields[0] == "script":
				mapping.Script = value
			case mapping != nil && fields[0] == "map":
				mapping.Map = append(mapping.Map, value)
			default:
				return nil, &ParseError{Line: start, Msg: fmt.Sprintf("misplaced option %q", fields[0])}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}
