// SPDX-License-Identifier: MPL-2.0

//go:build unix && !linux

package privilege

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// osProcess is the credential state of this process. Without getresuid the
// saved ids are not observable; setre*id with a changed real id resets them.
type osProcess struct{}

// Current returns the running process.
func Current() Process { return osProcess{} }

func (osProcess) Credentials() (Credentials, error) {
	ruid, euid := unix.Getuid(), unix.Geteuid()
	rgid, egid := unix.Getgid(), unix.Getegid()
	return Credentials{
		RUID: ruid, EUID: euid, SUID: euid,
		RGID: rgid, EGID: egid, SGID: egid,
	}, nil
}

func (osProcess) Drop() error {
	rgid := unix.Getgid()
	if err := unix.Setregid(rgid, rgid); err != nil {
		return fmt.Errorf("setregid(%d): %w", rgid, err)
	}
	ruid := unix.Getuid()
	if err := unix.Setreuid(ruid, ruid); err != nil {
		return fmt.Errorf("setreuid(%d): %w", ruid, err)
	}
	return nil
}

func (osProcess) Regain() error {
	return unix.Seteuid(0)
}

func (p osProcess) AsRealUser(fn func() error) (err error) {
	c, _ := p.Credentials()
	if c.EUID == c.RUID && c.EGID == c.RGID {
		return fn()
	}
	if err := unix.Setegid(c.RGID); err != nil {
		return fmt.Errorf("setegid(%d): %w", c.RGID, err)
	}
	if err := unix.Seteuid(c.RUID); err != nil {
		return errors.Join(fmt.Errorf("seteuid(%d): %w", c.RUID, err), unix.Setegid(c.EGID))
	}
	defer func() {
		if rerr := unix.Seteuid(c.EUID); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore euid %d: %w", c.EUID, rerr))
		}
		if rerr := unix.Setegid(c.EGID); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore egid %d: %w", c.EGID, rerr))
		}
	}()
	return fn()
}
