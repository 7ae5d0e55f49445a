package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/gertty/internal/backup"
)

// resetFlags restores every flag of cmd and its children to its default
// so one test's arguments never leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// isolateHome points HOME and the snapshot directory at a fresh temp
// directory and returns it.
func isolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	orig := newBackupManager
	t.Cleanup(func() { newBackupManager = orig })
	newBackupManager = func() *backup.Manager {
		return backup.NewManager(backup.WithBackupDir(filepath.Join(home, "backups")))
	}
	return home
}

// writeConfig writes a configuration file with mode perm into a fresh
// HOME and returns its path.
func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()

	home := isolateHome(t)
	path := filepath.Join(home, ".gertty.yaml")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod config: %v", err)
	}
	return path
}

const twoServers = `servers:
  - name: review
    url: https://review.example.org/
    username: alice
    git-root: ~/git/
  - name: staging
    url: https://staging.example.org/gerrit/
    username: bob
    password: hunter2
    git-root: ~/staging/
`
