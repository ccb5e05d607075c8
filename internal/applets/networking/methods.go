// SPDX-License-Identifier: MPL-2.0

package networking

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// method holds the command templates of one address method. Templates use
// %option% placeholders; a [[...]] section is dropped when any placeholder
// inside it has no value.
type method struct {
	up   []string
	down []string
}

var families = map[string]map[string]method{
	"inet": {
		"loopback": {
			up:   []string{"ip addr add 127.0.0.1/8 dev %iface%", "ip link set %iface% up"},
			down: []string{"ip link set %iface% down"},
		},
		"static": {
			up: []string{
				"ip addr add %address%/%bnmask%[[ broadcast %broadcast%]] dev %iface%[[ peer %pointopoint%]][[ label %label%]]",
				"ip link set[[ mtu %mtu%]][[ address %hwaddress%]] %iface% up",
				"[[ip route add default via %gateway% dev %iface%]]",
			},
			down: []string{
				"[[ip route del default via %gateway% dev %iface%]]",
				"ip addr flush dev %iface%",
				"ip link set %iface% down",
			},
		},
		"dhcp": {
			up: []string{
				"[[ip link set %iface% address %hwaddress%]]",
				"ip link set %iface% up",
				"udhcpc -R -n -p /var/run/udhcpc.%iface%.pid -i %iface%[[ -x hostname:%hostname%]]",
			},
			down: []string{
				"test -f /var/run/udhcpc.%iface%.pid && kill $(cat /var/run/udhcpc.%iface%.pid)",
				"ip link set %iface% down",
			},
		},
		"manual": {},
	},
	"inet6": {
		"loopback": {
			up:   []string{"ip link set %iface% up", "ip addr add ::1 dev %iface%"},
			down: []string{"ip link set %iface% down"},
		},
		"static": {
			up: []string{
				"ip addr add %address%/%netmask% dev %iface%[[ label %label%]]",
				"ip link set[[ mtu %mtu%]][[ address %hwaddress%]] %iface% up",
				"[[ip route add ::/0 via %gateway% dev %iface%]]",
			},
			down: []string{
				"ip -6 addr flush dev %iface%",
				"ip link set %iface% down",
			},
		},
		"manual": {},
	},
}

// lookupMethod returns the templates for a stanza.
func lookupMethod(i *Iface) (method, error) {
	methods, ok := families[i.Family]
	if !ok {
		return method{}, fmt.Errorf("unknown address type %q", i.Family)
	}
	m, ok := methods[i.Method]
	if !ok {
		return method{}, fmt.Errorf("unknown method %q", i.Method)
	}
	return m, nil
}

// variables returns the placeholder values of a stanza brought up on the
// physical interface iface.
func variables(i *Iface, iface string) (map[string]string, error) {
	vars := map[string]string{"iface": iface}
	for _, o := range i.Options {
		vars[o.Key] = o.Value
	}

	addr := vars["address"]
	if before, after, ok := strings.Cut(addr, "/"); ok {
		vars["address"] = before
		if _, set := vars["netmask"]; !set {
			vars["netmask"] = after
		}
	}
	if i.Family == "inet" && i.Method == "static" {
		if addr == "" {
			return nil, fmt.Errorf("%s: missing address", i.Name)
		}
		mask, ok := vars["netmask"]
		if !ok {
			return nil, fmt.Errorf("%s: missing netmask", i.Name)
		}
		bits, err := prefixLength(mask)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", i.Name, err)
		}
		vars["bnmask"] = strconv.Itoa(bits)
		if vars["broadcast"] == "+" {
			vars["broadcast"] = broadcast(vars["address"], bits)
		}
	}
	if i.Family == "inet6" && i.Method == "static" {
		if _, ok := vars["netmask"]; !ok {
			vars["netmask"] = "64"
		}
	}
	return vars, nil
}

// prefixLength accepts a dotted netmask or a prefix length.
func prefixLength(mask string) (int, error) {
	if n, err := strconv.Atoi(mask); err == nil && n >= 0 && n <= 32 {
		return n, nil
	}
	ip := net.ParseIP(mask).To4()
	if ip == nil {
		return 0, fmt.Errorf("invalid netmask %q", mask)
	}
	ones, bits := net.IPMask(ip).Size()
	if bits == 0 {
		return 0, fmt.Errorf("non-contiguous netmask %q", mask)
	}
	return ones, nil
}

func broadcast(address string, bits int) string {
	ip := net.ParseIP(address).To4()
	if ip == nil {
		return ""
	}
	mask := net.CIDRMask(bits, 32)
	out := make(net.IP, 4)
	for n := range out {
		out[n] = ip[n] | ^mask[n]
	}
	return out.String()
}

// expand substitutes vars into tmpl. The second result is false when a
// placeholder outside any [[...]] section has no value.
func expand(tmpl string, vars map[string]string) (string, bool) {
	var b strings.Builder
	for tmpl != "" {
		open := strings.Index(tmpl, "[[")
		if open < 0 {
			s, ok := substitute(tmpl, vars)
			if !ok {
				return "", false
			}
			b.WriteString(s)
			break
		}
		s, ok := substitute(tmpl[:open], vars)
		if !ok {
			return "", false
		}
		b.WriteString(s)

		rest := tmpl[open+2:]
		end := strings.Index(rest, "]]")
		if end < 0 {
			end = len(rest)
		}
		if opt, ok := substitute(rest[:end], vars); ok {
			b.WriteString(opt)
		}
		tmpl = strings.TrimPrefix(rest[end:], "]]")
	}
	return strings.TrimSpace(b.String()), true
}

// substitute replaces %name% placeholders, reporting whether all had
// values. "%%" is a literal percent sign.
func substitute(s string, vars map[string]string) (string, bool) {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '%')
		if open < 0 {
			b.WriteString(s)
			return b.String(), true
		}
		b.WriteString(s[:open])
		rest := s[open+1:]
		end := strings.IndexByte(rest, '%')
		if end < 0 {
			b.WriteString(s[open:])
			return b.String(), true
		}
		name := rest[:end]
		if name == "" {
			b.WriteByte('%')
		} else {
			v, ok := vars[name]
			if !ok || v == "" {
				return "", false
			}
			b.WriteString(v)
		}
		s = rest[end+1:]
	}
}
