// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package miscutils

import (
	"os"
	"os/exec"
)

func runAsUser(*exec.Cmd, crontabUser) {}

func chownForUser(*os.File, crontabUser) error { return nil }
