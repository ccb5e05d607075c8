// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/issue"
)

type listFunc func() []applet.Descriptor

func (f listFunc) All() []applet.Descriptor { return f() }

func nop(context.Context, []string) int { return 0 }

var applets = listFunc(func() []applet.Descriptor {
	return []applet.Descriptor{
		{Name: "crontab", Impl: "crontab", Entry: applet.Main(nop), Location: applet.DirUsrBin, SUID: applet.SUIDRequire},
		{Name: "echo", Impl: "echo", Entry: applet.Main(nop), Location: applet.DirBin, SUID: applet.SUIDDrop},
		{Name: "ifup", Impl: "ifupdown", Entry: applet.Main(nop), Location: applet.DirSbin, SUID: applet.SUIDDrop},
	}
})

func binary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shellbox")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/true\n"), 0o755))
	return path
}

func TestPlan(t *testing.T) {
	t.Parallel()

	links := Plan(applets, "/bin/shellbox", "/srv/root", Symlink)
	require.Equal(t, []Link{
		{Name: "crontab", Path: "/srv/root/usr/bin/crontab", Target: "/bin/shellbox", Location: applet.DirUsrBin},
		{Name: "echo", Path: "/srv/root/bin/echo", Target: "/bin/shellbox", Location: applet.DirBin},
		{Name: "ifup", Path: "/srv/root/sbin/ifup", Target: "/bin/shellbox", Location: applet.DirSbin},
	}, links)

	flat := Plan(applets, "/bin/shellbox", "/opt/box", Hardlink|Flat)
	for _, l := range flat {
		require.Equal(t, filepath.Join("/opt/box", l.Name), l.Path)
		require.True(t, l.Hard)
	}

	require.Equal(t, "/usr/bin/crontab", Plan(applets, "x", "", Symlink)[0].Path)
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "symlink", Symlink.String())
	require.Equal(t, "hardlink", Hardlink.String())
	require.Equal(t, "symlink,flat", Flat.String())
	require.Equal(t, "hardlink,flat", (Hardlink | Flat).String())
}

func TestMode_FlagsAreDistinctBits(t *testing.T) {
	t.Parallel()

	require.Equal(t, Mode(0), Symlink)
	require.Equal(t, Mode(1), Hardlink)
	require.Equal(t, Mode(2), Flat)
	require.Zero(t, Hardlink&Flat, "flags overlap")
}

func TestApply_Symlinks(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	target := binary(t)
	root := t.TempDir()
	links := Plan(applets, target, root, Symlink)

	res, err := Apply(context.Background(), links, nil)
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)
	for _, l := range links {
		dest, err := os.Readlink(l.Path)
		require.NoError(t, err)
		require.Equal(t, target, dest)
	}

	// A second run finds every link in place.
	res, err = Apply(context.Background(), links, nil)
	require.NoError(t, err)
	require.Equal(t, Result{Current: 3}, res)
}

func TestApply_ExistingFiles(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	target := binary(t)
	root := t.TempDir()
	links := Plan(applets, target, root, Flat)
	require.NoError(t, os.WriteFile(filepath.Join(root, "echo"), []byte("real echo"), 0o755))

	res, err := Apply(context.Background(), links, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Created)
	require.Equal(t, []string{filepath.Join(root, "echo")}, res.Skipped)
	data, err := os.ReadFile(filepath.Join(root, "echo"))
	require.NoError(t, err)
	require.Equal(t, "real echo", string(data))

	res, err = Apply(context.Background(), links, nil, WithForce(true))
	require.NoError(t, err)
	require.Equal(t, Result{Created: 1, Current: 2, Replaced: 1}, res)
	dest, err := os.Readlink(filepath.Join(root, "echo"))
	require.NoError(t, err)
	require.Equal(t, target, dest)
}

func TestApply_Hardlinks(t *testing.T) {
	t.Parallel()

	target := binary(t)
	root := filepath.Join(filepath.Dir(target), "root")
	links := Plan(applets, target, root, Hardlink)

	res, err := Apply(context.Background(), links, nil)
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)

	want, err := os.Stat(target)
	require.NoError(t, err)
	have, err := os.Stat(filepath.Join(root, "sbin", "ifup"))
	require.NoError(t, err)
	require.True(t, os.SameFile(want, have))

	res, err = Apply(context.Background(), links, nil)
	require.NoError(t, err)
	require.Equal(t, 3, res.Current)
}

func TestApply_PermissionDenied(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs an unprivileged unix user")
	}

	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0o555))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	_, err := Apply(context.Background(), Plan(applets, binary(t), root, Flat), nil)
	require.ErrorIs(t, err, os.ErrPermission)

	var ae *issue.ActionableError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, issue.InstallPermissionId, ae.Issue)
	require.Equal(t, "install crontab", ae.Operation)
}

func TestApply_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Apply(ctx, Plan(applets, "x", t.TempDir(), Flat), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, res.Created)
}

func TestManifest(t *testing.T) {
	t.Parallel()

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"toml": toml.Unmarshal,
	}
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			data, err := Manifest(applets, format)
			require.NoError(t, err)

			var doc manifestDoc
			require.NoError(t, decoders[format](data, &doc))
			require.Equal(t, Entries(applets), doc.Applets)
			require.Equal(t, ManifestEntry{
				Name: "crontab", Impl: "crontab", Path: "/usr/bin/crontab", Location: "/usr/bin", SUID: "require",
			}, doc.Applets[0])
		})
	}
}

func TestManifest_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Manifest(applets, "ini")
	var ae *issue.ActionableError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, issue.ManifestFormatId, ae.Issue)
	require.EqualError(t, err, `failed to write manifest: unknown format "ini"`)
}
