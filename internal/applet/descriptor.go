// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"errors"
	"fmt"
	"path"
)

var (
	// ErrInvalidLocation is the sentinel error wrapped by InvalidLocationError.
	ErrInvalidLocation = errors.New("invalid install location")

	// ErrInvalidSUIDPolicy is the sentinel error wrapped by InvalidSUIDPolicyError.
	ErrInvalidSUIDPolicy = errors.New("invalid suid policy")
)

// Install locations. The values mirror the canonical busybox directories.
const (
	DirRoot Location = iota
	DirBin
	DirSbin
	DirUsrBin
	DirUsrSbin
)

// Set-uid policies.
const (
	// SUIDDrop drops set-uid/set-gid privilege before the entry point runs.
	SUIDDrop SUIDPolicy = iota
	// SUIDRequire refuses to run unless the effective uid is root.
	SUIDRequire
	// SUIDMaybe leaves credentials alone; the applet decides.
	SUIDMaybe
)

type (
	// Location is the canonical directory an applet link is installed into.
	// It is installer metadata and is never consulted during dispatch.
	Location uint8

	// SUIDPolicy governs privilege handling before the entry point is called.
	SUIDPolicy uint8

	// Entrypoint is the sealed sum type over the two applet calling
	// conventions. The only implementations are Main and NoReturn.
	Entrypoint interface {
		entrypoint()
	}

	// Main is the raw-argv calling convention. argv[0] is the applet name,
	// the returned value is the process exit status.
	Main func(ctx context.Context, argv []string) int

	// NoReturn is the never-returns calling convention. args[0] is the applet
	// name. Implementations terminate through Exit and must not return.
	NoReturn func(ctx context.Context, args []string)

	// Descriptor describes one applet. Values are built once when the
	// registry table is assembled and never modified afterwards.
	Descriptor struct {
		// Name is the invocation name users type.
		Name string
		// Impl is the canonical implementation id. Aliases share it.
		Impl string
		// Entry is the entry point.
		Entry Entrypoint
		// Location is the canonical install directory.
		Location Location
		// SUID is the privilege policy.
		SUID SUIDPolicy
		// Usage is the static help text. The first line is the synopsis.
		Usage string
	}

	// InvalidLocationError is returned by ParseLocation for unknown directories.
	InvalidLocationError struct {
		Value string
	}

	// InvalidSUIDPolicyError is returned by ParseSUIDPolicy for unknown names.
	InvalidSUIDPolicyError struct {
		Value string
	}
)

var locationDirs = [...]string{
	DirRoot:    "/",
	DirBin:     "/bin",
	DirSbin:    "/sbin",
	DirUsrBin:  "/usr/bin",
	DirUsrSbin: "/usr/sbin",
}

var suidNames = [...]string{
	SUIDDrop:    "drop",
	SUIDRequire: "require",
	SUIDMaybe:   "maybe",
}

func (Main) entrypoint()     {}
func (NoReturn) entrypoint() {}

// String returns the install directory.
func (l Location) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Location(%d)", uint8(l))
	}
	return locationDirs[l]
}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool { return int(l) < len(locationDirs) }

// ParseLocation maps a directory ("/usr/bin") to its Location.
func ParseLocation(s string) (Location, error) {
	for i, dir := range locationDirs {
		if dir == s {
			return Location(i), nil
		}
	}
	return 0, &InvalidLocationError{Value: s}
}

// String returns the lower-case policy name.
func (p SUIDPolicy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("SUIDPolicy(%d)", uint8(p))
	}
	return suidNames[p]
}

// Valid reports whether p is one of the known policies.
func (p SUIDPolicy) Valid() bool { return int(p) < len(suidNames) }

// ParseSUIDPolicy maps "drop", "require" or "maybe" to its SUIDPolicy.
func ParseSUIDPolicy(s string) (SUIDPolicy, error) {
	for i, name := range suidNames {
		if name == s {
			return SUIDPolicy(i), nil
		}
	}
	return 0, &InvalidSUIDPolicyError{Value: s}
}

// InstallPath is the canonical path of the applet's link, e.g. /bin/echo.
func (d Descriptor) InstallPath() string {
	return path.Join(d.Location.String(), d.Name)
}

// Synopsis returns the first line of the usage text.
func (d Descriptor) Synopsis() string {
	for i := 0; i < len(d.Usage); i++ {
		if d.Usage[i] == '\n' {
			return d.Usage[:i]
		}
	}
	return d.Usage
}

// Error implements the error interface.
func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid install location %q", e.Value)
}

// Unwrap returns ErrInvalidLocation for errors.Is.
func (e *InvalidLocationError) Unwrap() error { return ErrInvalidLocation }

// Error implements the error interface.
func (e *InvalidSUIDPolicyError) Error() string {
	return fmt.Sprintf("invalid suid policy %q (want drop, require or maybe)", e.Value)
}

// Unwrap returns ErrInvalidSUIDPolicy for errors.Is.
func (e *InvalidSUIDPolicyError) Unwrap() error { return ErrInvalidSUIDPolicy }
