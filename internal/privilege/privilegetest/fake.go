// SPDX-License-Identifier: MPL-2.0

// Package privilegetest provides an in-memory privilege.Process for tests.
package privilegetest

import (
	"errors"
	"sync"

	"github.com/shellbox/shellbox/internal/privilege"
)

// ErrNotPermitted is what the fake returns for operations a real kernel
// would reject.
var ErrNotPermitted = errors.New("operation not permitted")

// Process is a privilege.Process backed by a Credentials value. It models
// the kernel rules closely enough to exercise Enforce: Drop copies the real
// ids everywhere, and Regain only succeeds while root is still the effective
// or saved uid.
type Process struct {
	mu sync.Mutex

	creds privilege.Credentials

	// DropErr, when set, makes Drop fail without changing anything.
	DropErr error
	// CredentialsErr, when set, makes Credentials fail.
	CredentialsErr error
	// IgnoreDrop makes Drop report success while leaving the ids alone,
	// as a buggy platform layer would.
	IgnoreDrop bool

	drops   int
	asUsers int
}

// New returns a fake process with the given credentials.
func New(c privilege.Credentials) *Process {
	return &Process{creds: c}
}

// User returns credentials of an ordinary user with no set-id bits.
func User(uid, gid int) privilege.Credentials {
	return privilege.Credentials{RUID: uid, EUID: uid, SUID: uid, RGID: gid, EGID: gid, SGID: gid}
}

// Root returns credentials of a process started by root.
func Root() privilege.Credentials { return User(0, 0) }

// SetUIDRoot returns credentials of a set-uid-root binary run by uid/gid.
func SetUIDRoot(uid, gid int) privilege.Credentials {
	return privilege.Credentials{RUID: uid, EUID: 0, SUID: 0, RGID: gid, EGID: gid, SGID: gid}
}

// Credentials implements privilege.Process.
func (p *Process) Credentials() (privilege.Credentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.CredentialsErr != nil {
		return privilege.Credentials{}, p.CredentialsErr
	}
	return p.creds, nil
}

// Drop implements privilege.Process.
func (p *Process) Drop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.drops++
	if p.DropErr != nil {
		return p.DropErr
	}
	if p.IgnoreDrop {
		return nil
	}
	c := &p.creds
	c.EGID, c.SGID = c.RGID, c.RGID
	c.EUID, c.SUID = c.RUID, c.RUID
	return nil
}

// Regain implements privilege.Process.
func (p *Process) Regain() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := &p.creds
	if c.RUID != 0 && c.EUID != 0 && c.SUID != 0 {
		return ErrNotPermitted
	}
	c.EUID = 0
	return nil
}

// Drops returns how many times Drop was called.
func (p *Process) Drops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drops
}

// AsRealUser implements privilege.Process. While fn runs, Credentials
// reports the effective ids equal to the real ones.
func (p *Process) AsRealUser(fn func() error) error {
	p.mu.Lock()
	saved := p.creds
	p.asUsers++
	p.creds.EUID, p.creds.EGID = p.creds.RUID, p.creds.RGID
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.creds.EUID, p.creds.EGID = saved.EUID, saved.EGID
		p.mu.Unlock()
	}()
	return fn()
}

// AsRealUserCalls returns how many times AsRealUser was called.
func (p *Process) AsRealUserCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asUsers
}
