// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
)

// genericNames are the names under which the binary acts as a launcher
// rather than as one applet.
var genericNames = []string{"busybox", "shellbox"}

type (
	// Resolver looks up applets by exact name. *registry.Registry satisfies it.
	Resolver interface {
		Resolve(name string) (applet.Descriptor, bool)
	}

	// Invocation is the result of parsing argv.
	Invocation struct {
		// Name is the applet name that was asked for. For an unresolved
		// invocation under a generic name it is the first argument, so
		// error messages name what the user typed.
		Name string
		// Args are the arguments after the applet name.
		Args []string
		// Applet is the resolved descriptor, valid when Found is set.
		Applet applet.Descriptor
		// Found reports whether Name resolved.
		Found bool
		// Generic reports that argv[0] is one of the launcher names.
		Generic bool
		// Management reports an unresolved generic invocation that should
		// go to the management CLI: no arguments, or a leading flag.
		Management bool
	}
)

// IsGenericName reports whether name is a launcher name.
func IsGenericName(name string) bool {
	return slices.Contains(genericNames, name)
}

// BaseName returns the applet name encoded in argv0: its final path element
// with the leading "-" of a login shell removed.
func BaseName(argv0 string) string {
	if argv0 == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.Base(argv0), "-")
}

// ParseInvocation resolves argv in precedence order: the basename of
// argv[0] first, then the first argument. Nothing else is consulted.
func ParseInvocation(argv []string, r Resolver) Invocation {
	if len(argv) == 0 {
		return Invocation{}
	}

	base := BaseName(argv[0])
	if d, ok := r.Resolve(base); ok {
		return Invocation{Name: base, Args: argv[1:], Applet: d, Found: true, Generic: IsGenericName(base)}
	}

	inv := Invocation{Name: base, Args: argv[1:], Generic: IsGenericName(base)}
	if len(argv) < 2 {
		inv.Management = inv.Generic
		return inv
	}
	if d, ok := r.Resolve(argv[1]); ok {
		inv.Name, inv.Args, inv.Applet, inv.Found = argv[1], argv[2:], d, true
		return inv
	}
	if inv.Generic {
		if strings.HasPrefix(argv[1], "-") {
			inv.Management = true
			return inv
		}
		inv.Name, inv.Args = argv[1], argv[2:]
	}
	return inv
}
