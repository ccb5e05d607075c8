// SPDX-License-Identifier: MPL-2.0

package privilege

import (
	"errors"
	"fmt"

	"github.com/shellbox/shellbox/internal/applet"
)

var (
	// ErrSUIDRequired is returned by Enforce when a SUIDRequire applet runs
	// without an effective uid of root.
	ErrSUIDRequired = errors.New("must be suid to work properly")

	// ErrDropFailed is the sentinel error wrapped by DropError.
	ErrDropFailed = errors.New("can't drop privileges")
)

type (
	// Credentials is a snapshot of the process ids.
	Credentials struct {
		RUID, EUID, SUID int
		RGID, EGID, SGID int
	}

	// Process is the credential state of the running process.
	Process interface {
		// Credentials reads the current ids.
		Credentials() (Credentials, error)
		// Drop sets every uid and gid slot to the real id. It cannot be undone.
		Drop() error
		// Regain tries to make root the effective uid again. It exists so a
		// drop can be verified and must fail after a successful Drop.
		Regain() error
		// AsRealUser runs fn with the effective ids switched to the real
		// ones and switches them back afterwards, so files fn opens are
		// checked against the invoking user. REQUIRE applets use it for
		// paths the user names.
		AsRealUser(fn func() error) error
	}

	// DropError reports a failed or unverifiable privilege drop.
	DropError struct {
		Before Credentials
		Err    error
	}
)

// Elevated reports whether the effective uid is root.
func (c Credentials) Elevated() bool { return c.EUID == 0 }

// SetID reports whether the process runs with ids that differ from the
// real ones, i.e. it was started set-uid or set-gid.
func (c Credentials) SetID() bool {
	return c.RUID != c.EUID || c.RUID != c.SUID || c.RGID != c.EGID || c.RGID != c.SGID
}

// Dropped reports whether every slot holds the real id.
func (c Credentials) Dropped() bool {
	return c.EUID == c.RUID && c.SUID == c.RUID && c.EGID == c.RGID && c.SGID == c.RGID
}

// Enforce applies policy to p.
//
// SUIDRequire returns ErrSUIDRequired unless the effective uid is root.
// SUIDDrop drops set-id privilege and verifies the result; any failure is a
// *DropError. SUIDMaybe does nothing.
func Enforce(p Process, policy applet.SUIDPolicy) error {
	switch policy {
	case applet.SUIDMaybe:
		return nil
	case applet.SUIDRequire:
		creds, err := p.Credentials()
		if err != nil {
			return fmt.Errorf("read credentials: %w", err)
		}
		if !creds.Elevated() {
			return ErrSUIDRequired
		}
		return nil
	case applet.SUIDDrop:
		return drop(p)
	default:
		return fmt.Errorf("unknown suid policy %v", policy)
	}
}

func drop(p Process) error {
	before, err := p.Credentials()
	if err != nil {
		return &DropError{Err: fmt.Errorf("read credentials: %w", err)}
	}
	if !before.SetID() {
		return nil
	}

	if err := p.Drop(); err != nil {
		return &DropError{Before: before, Err: err}
	}

	after, err := p.Credentials()
	if err != nil {
		return &DropError{Before: before, Err: fmt.Errorf("re-read credentials: %w", err)}
	}
	if !after.Dropped() {
		return &DropError{Before: before, Err: fmt.Errorf("ids still differ after drop: %+v", after)}
	}
	// Root that was root to begin with has nothing to lose.
	if after.RUID != 0 {
		if err := p.Regain(); err == nil {
			return &DropError{Before: before, Err: errors.New("root could be regained after drop")}
		}
	}
	return nil
}

// Error implements the error interface.
func (e *DropError) Error() string {
	return fmt.Sprintf("%v: %v", ErrDropFailed, e.Err)
}

// Unwrap returns both ErrDropFailed and the cause.
func (e *DropError) Unwrap() []error { return []error{ErrDropFailed, e.Err} }
