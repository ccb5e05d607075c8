// SPDX-License-Identifier: MPL-2.0

//go:build integration

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
)

// setuidTestTimeout bounds the image build and every exec.
const setuidTestTimeout = 5 * time.Minute

// checkTestcontainersAvailable reports whether a container provider works.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

func projectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "go.mod not found")
		dir = parent
	}
}

// TestSetuid runs the privilege scenarios against a set-uid root binary in
// a container, as an unprivileged user.
func TestSetuid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping: testcontainers provider not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setuidTestTimeout)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			FromDockerfile: testcontainers.FromDockerfile{
				Context:    projectRoot(t),
				Dockerfile: "tests/cli/setuid.Dockerfile",
			},
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	run := func(t *testing.T, user string, cmd ...string) (int, string) {
		t.Helper()
		code, r, err := ctr.Exec(ctx, cmd, tcexec.WithUser(user), tcexec.Multiplexed())
		require.NoError(t, err)
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		return code, string(out)
	}

	t.Run("DropPolicyRunsAsRealUser", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "id", "-u")
		require.Equal(t, 0, code, out)
		require.Equal(t, "65534", strings.TrimSpace(out))
	})

	t.Run("RequirePolicyKeepsRoot", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "crontab", "-l")
		require.Equal(t, 1, code, out)
		require.Contains(t, out, "no crontab for nobody")
	})

	t.Run("RequirePolicyDeniedWithoutSetuid", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox-nosuid", "crontab", "-l")
		require.Equal(t, 126, code, out)
		require.Contains(t, out, "crontab: must be suid to work properly")
	})

	t.Run("RequirePolicyRefusesSpoolDir", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "crontab", "-c", "/tmp", "-l")
		require.Equal(t, 1, code, out)
		require.Contains(t, out, "crontab: only root can use -c")
	})

	t.Run("RequirePolicyReadsTableAsRealUser", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "crontab", "/etc/shadow")
		require.Equal(t, 1, code, out)
		require.Contains(t, out, "crontab: can't open '/etc/shadow'")

		code, out = run(t, "root", "test", "!", "-e", "/var/spool/cron/crontabs/nobody")
		require.Equal(t, 0, code, "table was installed from /etc/shadow: %s", out)
	})

	t.Run("SetIDInstallIsUnprivileged", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "--install", "-s", "--force", "/usr/bin")
		require.NotEqual(t, 0, code, out)

		code, out = run(t, "root", "sh", "-c", "ls -l /usr/bin | grep -c /bin/shellbox")
		require.Equal(t, 1, code, "links were created under /usr/bin: %s", out)
		require.Equal(t, "0", strings.TrimSpace(out))
	})

	t.Run("SetIDIgnoresUserConfig", func(t *testing.T) {
		code, out := run(t, "nobody", "/bin/shellbox", "--show-config", "--config", "/nonexistent.cue")
		require.Equal(t, 0, code, out)
		require.Contains(t, out, `prefix:   "/"`)
	})
}
