// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

// identity is the set of ids id reports.
type identity struct {
	uid, gid, euid, egid int
	groups               []int
}

func currentIdentity() (identity, error) {
	groups, err := os.Getgroups()
	if err != nil {
		return identity{}, err
	}
	return identity{
		uid: os.Getuid(), gid: os.Getgid(),
		euid: os.Geteuid(), egid: os.Getegid(),
		groups: groups,
	}, nil
}

func lookupIdentity(name string) (identity, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return identity{}, fmt.Errorf("unknown user %s", name)
	}
	uid, _ := strconv.Atoi(u.Uid) //nolint:errcheck // numeric on unix
	gid, _ := strconv.Atoi(u.Gid) //nolint:errcheck // numeric on unix
	id := identity{uid: uid, gid: gid, euid: uid, egid: gid}
	gids, err := u.GroupIds()
	if err == nil {
		for _, g := range gids {
			if n, err := strconv.Atoi(g); err == nil {
				id.groups = append(id.groups, n)
			}
		}
	}
	return id, nil
}

func userName(uid int) string {
	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		return u.Username
	}
	return ""
}

func groupName(gid int) string {
	if g, err := user.LookupGroupId(strconv.Itoa(gid)); err == nil {
		return g.Name
	}
	return ""
}

// ID prints user and group ids.
func ID(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		fs := appletutil.NewFlagSet(argv[0])
		onlyUser := fs.BoolP("user", "u", false, "user ID")
		onlyGroup := fs.BoolP("group", "g", false, "group ID")
		allGroups := fs.BoolP("groups", "G", false, "supplementary group IDs")
		names := fs.BoolP("name", "n", false, "print names instead of numbers")
		realIDs := fs.BoolP("real", "r", false, "print real ID instead of effective ID")
		if err := appletutil.Parse(fs, args); err != nil {
			return err
		}
		selected := 0
		for _, b := range []bool{*onlyUser, *onlyGroup, *allGroups} {
			if b {
				selected++
			}
		}
		if selected > 1 {
			return &appletutil.UsageError{Err: errors.New("only one of -u, -g, -G may be given")}
		}
		if (*names || *realIDs) && selected == 0 {
			return appletutil.ErrUsage
		}

		var id identity
		var err error
		switch operands := fs.Args(); len(operands) {
		case 0:
			id, err = currentIdentity()
		case 1:
			id, err = lookupIdentity(operands[0])
		default:
			return appletutil.ErrUsage
		}
		if err != nil {
			return err
		}

		uid, gid := id.euid, id.egid
		if *realIDs {
			uid, gid = id.uid, id.gid
		}
		num := func(n int, lookup func(int) string) string {
			if *names {
				if s := lookup(n); s != "" {
					return s
				}
			}
			return strconv.Itoa(n)
		}

		switch {
		case *onlyUser:
			_, err = fmt.Fprintln(stdio.Stdout, num(uid, userName))
		case *onlyGroup:
			_, err = fmt.Fprintln(stdio.Stdout, num(gid, groupName))
		case *allGroups:
			parts := []string{num(gid, groupName)}
			for _, g := range id.groups {
				if g != gid {
					parts = append(parts, num(g, groupName))
				}
			}
			_, err = fmt.Fprintln(stdio.Stdout, strings.Join(parts, " "))
		default:
			_, err = fmt.Fprintln(stdio.Stdout, formatIdentity(id))
		}
		return err
	})
}

// formatIdentity renders the default "uid=0(root) gid=0(root) ..." line.
func formatIdentity(id identity) string {
	named := func(n int, name string) string {
		if name == "" {
			return strconv.Itoa(n)
		}
		return fmt.Sprintf("%d(%s)", n, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "uid=%s gid=%s", named(id.uid, userName(id.uid)), named(id.gid, groupName(id.gid)))
	if id.euid != id.uid {
		fmt.Fprintf(&b, " euid=%s", named(id.euid, userName(id.euid)))
	}
	if id.egid != id.gid {
		fmt.Fprintf(&b, " egid=%s", named(id.egid, groupName(id.egid)))
	}
	if len(id.groups) > 0 {
		parts := make([]string, len(id.groups))
		for i, g := range id.groups {
			parts[i] = named(g, groupName(g))
		}
		fmt.Fprintf(&b, " groups=%s", strings.Join(parts, ","))
	}
	return b.String()
}

// Whoami prints the name of the effective user.
func Whoami(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(_ context.Context, stdio *applet.IO, args []string) error {
		if len(args) > 0 {
			return appletutil.ErrUsage
		}
		euid := os.Geteuid()
		name := userName(euid)
		if name == "" {
			return fmt.Errorf("unknown uid %d", euid)
		}
		_, err := fmt.Fprintln(stdio.Stdout, name)
		return err
	})
}
