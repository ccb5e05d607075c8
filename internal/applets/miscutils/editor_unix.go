// SPDX-License-Identifier: MPL-2.0

//go:build unix

package miscutils

import (
	"os"
	"os/exec"
	"syscall"
)

// runAsUser makes cmd run with the identity of u when the process could
// otherwise hand the editor root privileges.
func runAsUser(cmd *exec.Cmd, u crontabUser) {
	if os.Geteuid() != 0 || u.uid == 0 {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Credential: &syscall.Credential{Uid: uint32(u.uid), Gid: uint32(u.gid)},
	}
}

// chownForUser gives the open file f to u.
func chownForUser(f *os.File, u crontabUser) error {
	if os.Geteuid() != 0 {
		return nil
	}
	return f.Chown(u.uid, u.gid)
}
