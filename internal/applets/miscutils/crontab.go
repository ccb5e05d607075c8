// SPDX-License-Identifier: MPL-2.0

package miscutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
	"github.com/shellbox/shellbox/internal/privilege"
)

const (
	// DefaultCrontabDir is the cron spool directory.
	DefaultCrontabDir = "/var/spool/cron/crontabs"
	// cronUpdate is the file in the spool directory that crond watches for
	// users whose table changed.
	cronUpdate = "cron.update"
)

type crontabUser struct {
	name string
	uid  int
	gid  int
	home string
}

// Crontab lists, edits, removes or installs the invoking user's table.
// Root may act on another user with -u. A set-id crontab refuses -c from
// anyone but root and reads replacement tables as the real user.
func Crontab(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		flags := appletutil.NewFlagSet(applet.Name(ctx, argv[0]))
		dir := flags.StringP("dir", "c", DefaultCrontabDir, "crontab directory")
		userName := flags.StringP("user", "u", "", "user")
		list := flags.BoolP("list", "l", false, "list crontab")
		edit := flags.BoolP("edit", "e", false, "edit crontab")
		remove := flags.BoolP("remove", "r", false, "delete crontab")
		if err := appletutil.Parse(flags, args); err != nil {
			return err
		}

		proc := privilege.FromContext(ctx)
		creds, err := proc.Credentials()
		if err != nil {
			return appletutil.Statusf(1, "%v", appletutil.Cause(err))
		}
		if flags.Changed("dir") && creds.SetID() && creds.RUID != 0 {
			return appletutil.Statusf(1, "only root can use -c")
		}
		u, err := crontabOwner(creds, *userName)
		if err != nil {
			return err
		}
		spool := applet.Path(ctx, *dir)
		table := filepath.Join(spool, u.name)

		switch {
		case *list:
			return listCrontab(stdio.Stdout, table, u)
		case *remove:
			if err := os.Remove(table); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return appletutil.Statusf(1, "can't remove %s: %v", table, appletutil.Cause(err))
			}
			return notifyCrond(spool, u)
		case *edit:
			data, err := editCrontab(ctx, stdio, spool, table, u)
			if err != nil {
				return err
			}
			return installCrontab(spool, table, u, data)
		}

		if flags.NArg() == 0 {
			return &appletutil.UsageError{}
		}
		data, err := readTable(ctx, proc, stdio.Stdin, flags.Arg(0))
		if err != nil {
			return err
		}
		return installCrontab(spool, table, u, data)
	})
}

// crontabOwner returns the user whose table is used. Only a real uid of 0
// may name another user.
func crontabOwner(creds privilege.Credentials, name string) (crontabUser, error) {
	var (
		u   *user.User
		err error
	)
	if name != "" {
		if creds.RUID != 0 {
			return crontabUser{}, appletutil.Statusf(1, "only root can use -u")
		}
		u, err = user.Lookup(name)
	} else {
		u, err = user.LookupId(strconv.Itoa(creds.RUID))
	}
	if err != nil {
		return crontabUser{}, appletutil.Statusf(1, "unknown user %s", name)
	}

	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	return crontabUser{name: u.Username, uid: uid, gid: gid, home: u.HomeDir}, nil
}

func listCrontab(w io.Writer, table string, u crontabUser) error {
	f, err := os.Open(table)
	if errors.Is(err, fs.ErrNotExist) {
		return appletutil.Statusf(1, "no crontab for %s", u.name)
	}
	if err != nil {
		return appletutil.Statusf(1, "%s: %v", table, appletutil.Cause(err))
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// readTable reads the replacement table from file, or stdin for "-". The
// file is opened with the real user's identity so a set-id crontab cannot
// be used to read files the caller could not.
func readTable(ctx context.Context, proc privilege.Process, stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	var data []byte
	err := proc.AsRealUser(func() (err error) {
		data, err = os.ReadFile(applet.Path(ctx, file))
		return err
	})
	if err != nil {
		return nil, appletutil.Statusf(1, "can't open '%s': %v", file, appletutil.Cause(err))
	}
	return data, nil
}

// installCrontab replaces table with data, mode 0600, and tells crond.
func installCrontab(spool, table string, u crontabUser, data []byte) (err error) {
	tmp, err := os.CreateTemp(spool, "."+u.name+".new-*")
	if err != nil {
		return appletutil.Statusf(1, "can't create temporary file in %s: %v", spool, appletutil.Cause(err))
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), table); err != nil {
		return appletutil.Statusf(1, "can't install %s: %v", table, appletutil.Cause(err))
	}
	return notifyCrond(spool, u)
}

// notifyCrond appends the user name to cron.update.
func notifyCrond(spool string, u crontabUser) error {
	f, err := os.OpenFile(filepath.Join(spool, cronUpdate), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		// crond also rescans the spool on its own.
		return nil
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, u.name)
	return err
}
