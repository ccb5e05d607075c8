// SPDX-License-Identifier: MPL-2.0

//go:build linux

package privilege

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// osProcess is the credential state of this process. x/sys/unix routes the
// set*id calls through package syscall, which applies them to every thread.
type osProcess struct{}

// Current returns the running process.
func Current() Process { return osProcess{} }

func (osProcess) Credentials() (Credentials, error) {
	ruid, euid, suid := unix.Getresuid()
	rgid, egid, sgid := unix.Getresgid()
	return Credentials{
		RUID: ruid, EUID: euid, SUID: suid,
		RGID: rgid, EGID: egid, SGID: sgid,
	}, nil
}

// Drop sets gids before uids: once the uid is dropped the process may no
// longer change its gids.
func (osProcess) Drop() error {
	rgid := unix.Getgid()
	if err := unix.Setresgid(rgid, rgid, rgid); err != nil {
		return fmt.Errorf("setresgid(%d): %w", rgid, err)
	}
	ruid := unix.Getuid()
	if err := unix.Setresuid(ruid, ruid, ruid); err != nil {
		return fmt.Errorf("setresuid(%d): %w", ruid, err)
	}
	return nil
}

func (osProcess) Regain() error {
	return unix.Setresuid(-1, 0, -1)
}

// AsRealUser lowers only the effective ids; the saved ids keep the
// privilege that the restore needs.
func (p osProcess) AsRealUser(fn func() error) (err error) {
	c, _ := p.Credentials()
	if c.EUID == c.RUID && c.EGID == c.RGID {
		return fn()
	}
	if err := unix.Setresgid(-1, c.RGID, -1); err != nil {
		return fmt.Errorf("setresgid(-1, %d, -1): %w", c.RGID, err)
	}
	if err := unix.Setresuid(-1, c.RUID, -1); err != nil {
		return errors.Join(fmt.Errorf("setresuid(-1, %d, -1): %w", c.RUID, err), unix.Setresgid(-1, c.EGID, -1))
	}
	defer func() {
		if rerr := unix.Setresuid(-1, c.EUID, -1); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore euid %d: %w", c.EUID, rerr))
		}
		if rerr := unix.Setresgid(-1, c.EGID, -1); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore egid %d: %w", c.EGID, rerr))
		}
	}()
	return fn()
}
