// SPDX-License-Identifier: MPL-2.0

//go:build unix

package coreutils

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	accessRead  = unix.R_OK
	accessWrite = unix.W_OK
	accessExec  = unix.X_OK
)

// accessible asks the kernel, so the answer accounts for the real ids, ACLs
// and read-only mounts.
func accessible(path string, mode uint32) bool {
	return unix.Access(path, mode) == nil
}

func ownedByEffective(fi os.FileInfo, user bool) bool {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	if user {
		return int(st.Uid) == os.Geteuid()
	}
	return int(st.Gid) == os.Getegid()
}
