// SPDX-License-Identifier: MPL-2.0

package miscutils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// editCrontab copies table to a temporary file, runs $VISUAL or $EDITOR
// (default vi) on it as u, and returns the edited content. The file sits
// next to the spool directory, not in a user-writable $TMPDIR, and is handed
// to u while still open.
func editCrontab(ctx context.Context, stdio *applet.IO, spool, table string, u crontabUser) ([]byte, error) {
	spool = filepath.Clean(spool)
	tmp, err := os.CreateTemp(filepath.Dir(spool), filepath.Base(spool)+".*")
	if err != nil {
		return nil, appletutil.Statusf(1, "can't create temporary file: %v", appletutil.Cause(err))
	}
	defer os.Remove(tmp.Name())

	current, err := os.ReadFile(table)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		_ = tmp.Close()
		return nil, appletutil.Statusf(1, "%s: %v", table, appletutil.Cause(err))
	}
	if _, err := tmp.Write(current); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := chownForUser(tmp, u); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	editor := "vi"
	if v, ok := stdio.LookupEnv("VISUAL"); ok && v != "" {
		editor = v
	} else if v, ok := stdio.LookupEnv("EDITOR"); ok && v != "" {
		editor = v
	}

	// The editor command may carry arguments, so it goes through sh.
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", editor+` "$1"`, "crontab", tmp.Name())
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdio.Stdin, stdio.Stdout, stdio.Stderr
	cmd.Env = append(stdio.Environ(), "HOME="+u.home)
	runAsUser(cmd, u)
	if err := cmd.Run(); err != nil {
		return nil, appletutil.Statusf(1, "%s: %v", editor, err)
	}

	return os.ReadFile(tmp.Name())
}
