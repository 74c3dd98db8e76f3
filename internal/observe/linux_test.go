package observe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTool installs a shell script under name in a directory that is
// prepended to PATH for the test.
func fakeTool(t *testing.T, dir, name, script string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
}

func toolDir(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script tool fakes require a POSIX shell")
	}
	dir := t.TempDir()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

func TestLinuxAccounts(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "getent", `
if [ "$1" = "passwd" ]; then
  echo "root:x:0:0:root:/root:/bin/bash"
  echo "alice:x:1000:1000::/home/alice:/bin/bash"
  echo "mallory:x:1001:1001::/home/mallory:/bin/bash"
else
  echo "sudo:x:27:alice,bob"
fi
`)

	ids, admins, err := NewLinux().Accounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"root": "0", "alice": "1000", "mallory": "1001"}, ids)
	require.Equal(t, []string{"alice", "bob"}, admins)
}

func TestLinuxAccountsMissingSudoGroup(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "getent", `
if [ "$1" = "passwd" ]; then
  echo "root:x:0:0:root:/root:/bin/bash"
else
  exit 2
fi
`)

	ids, admins, err := NewLinux().Accounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"root": "0"}, ids)
	require.Empty(t, admins)
}

func TestLinuxRunningProcesses(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "ps", `
echo "sshd"
echo "cron"
echo ""
echo "nc"
`)

	running, err := NewLinux().RunningProcesses(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"sshd", "cron", "nc"}, running)
}

func TestLinuxPackageInstalled(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "dpkg-query", `echo "install ok installed"`)

	installed, err := NewLinux().PackageInstalled(context.Background(), "ufw")
	require.NoError(t, err)
	require.True(t, installed)
}

func TestLinuxPackageNotInstalled(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "dpkg-query", `
echo "no packages found matching john" >&2
exit 1
`)

	installed, err := NewLinux().PackageInstalled(context.Background(), "john")
	require.NoError(t, err)
	require.False(t, installed)
}

func TestLinuxPackageDeinstalled(t *testing.T) {
	dir := toolDir(t)
	fakeTool(t, dir, "dpkg-query", `echo "deinstall ok config-files"`)

	installed, err := NewLinux().PackageInstalled(context.Background(), "ufw")
	require.NoError(t, err)
	require.False(t, installed)
}
