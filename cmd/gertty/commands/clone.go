package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/git"
	"github.com/thoreinstein/gertty/internal/lockfile"
	"github.com/thoreinstein/gertty/internal/logging"
)

func init() {
	rootCmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone <project>",
	Short: "Clone or update a project under the git root",
	Long: `Clone a project from the server's git URL into the git root, or
fast-forward it when a checkout already exists. The server's TLS policy
applies to git as it does to HTTP.`,
	Example: `  gertty clone openstack/nova
  gertty -s review clone tools/gertty`,
	Args: cobra.ExactArgs(1),
	RunE: runClone,
}

func runClone(cmd *cobra.Command, args []string) error {
	project := args[0]
	if err := git.ValidateProject(project); err != nil {
		return errors.NewUserError(err, "project names are relative paths such as org/repo")
	}

	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	lock, err := lockfile.Acquire(cfg.LockFile)
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			return errors.NewUserError(err, "another gertty process is using this server")
		}
		return errors.NewSystemError(err, "")
	}
	defer func() { _ = lock.Release() }()

	logging.FromContext(cmd.Context()).Debug("cloning project",
		"server", cfg.Server, "project", project, "git_root", cfg.GitRoot)

	runner := git.NewRunner(cfg.Network)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	dest, err := runner.CloneProject(cmd.Context(), cfg.GitURL, cfg.GitRoot, project)
	if err != nil {
		return errors.NewSystemError(err, "check the git URL with: gertty config show")
	}

	fmt.Fprintln(cmd.OutOrStdout(), dest)
	return nil
}
