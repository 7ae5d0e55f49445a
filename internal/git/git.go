// Package git runs git for Gerrit projects with the server's network
// policy applied.
package git

import (
	"context"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gertty/internal/netpolicy"
)

var (
	// ErrInvalidURL indicates a clone URL that git should not be handed.
	ErrInvalidURL = errors.New("invalid git URL")

	// ErrInvalidProject indicates a project name that would escape git-root.
	ErrInvalidProject = errors.New("invalid project name")
)

var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[A-Za-z0-9._/~-]+\.git$`)

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ssh":   true,
	"git":   true,
	"file":  true,
}

// ValidateURL rejects URLs that could be interpreted as git options or
// that use transports other than http(s), ssh, git and file.
func ValidateURL(raw string) error {
	if raw == "" {
		return errors.Wrap(ErrInvalidURL, "empty")
	}
	if strings.HasPrefix(raw, "-") {
		return errors.Wrapf(ErrInvalidURL, "%q looks like an option", raw)
	}
	if strings.Contains(raw, "::") {
		return errors.Wrapf(ErrInvalidURL, "%q uses a remote helper", raw)
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return errors.Wrapf(ErrInvalidURL, "%q: %v", raw, err)
		}
		if !allowedSchemes[u.Scheme] {
			return errors.Wrapf(ErrInvalidURL, "unsupported scheme %q", u.Scheme)
		}
		return nil
	}
	if scpLike.MatchString(raw) {
		return nil
	}
	return errors.Wrapf(ErrInvalidURL, "%q has no scheme", raw)
}

// ValidateProject rejects project names that are empty, absolute or
// climb out of the clone root.
func ValidateProject(project string) error {
	if project == "" || strings.HasPrefix(project, "/") || strings.HasPrefix(project, "-") {
		return errors.Wrapf(ErrInvalidProject, "%q", project)
	}
	for _, part := range strings.Split(project, "/") {
		if part == ".." || part == "." || part == "" {
			return errors.Wrapf(ErrInvalidProject, "%q", project)
		}
	}
	return nil
}

// ProjectURL returns the clone URL of project under gitURL, which ends in "/".
func ProjectURL(gitURL, project string) string {
	return gitURL + project
}

// LocalPath returns where project is cloned under gitRoot.
func LocalPath(gitRoot, project string) string {
	return filepath.Join(gitRoot, filepath.FromSlash(project))
}

// Runner runs git commands. Stdin, Stdout and Stderr default to the
// process streams so git can ask for credentials.
type Runner struct {
	Policy netpolicy.Policy
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner for policy attached to the process streams.
func NewRunner(policy netpolicy.Policy) *Runner {
	return &Runner{Policy: policy, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Command builds a git command carrying the policy environment.
func (r *Runner) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(), r.Policy.GitEnv()...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd
}

// Clone clones url into dest.
func (r *Runner) Clone(ctx context.Context, url, dest string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	if err := r.Command(ctx, "clone", "--", url, dest).Run(); err != nil {
		return errors.Wrap(err, "git clone failed")
	}
	return nil
}

// Pull performs a fast-forward-only pull in repoPath.
func (r *Runner) Pull(ctx context.Context, repoPath string) error {
	if err := r.Command(ctx, "-C", repoPath, "pull", "--ff-only").Run(); err != nil {
		return errors.Wrap(err, "git pull failed")
	}
	return nil
}

// CloneProject clones project from gitURL into gitRoot, or pulls when a
// checkout already exists. It returns the local path.
func (r *Runner) CloneProject(ctx context.Context, gitURL, gitRoot, project string) (string, error) {
	if err := ValidateProject(project); err != nil {
		return "", err
	}
	dest := LocalPath(gitRoot, project)
	if err := ValidateRemote(dest); err == nil {
		return dest, r.Pull(ctx, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", errors.Wrap(err, "creating git root")
	}
	return dest, r.Clone(ctx, ProjectURL(gitURL, project), dest)
}

// ValidateRemote checks if repoPath is a valid git repository by verifying
// the existence of a .git directory.
func ValidateRemote(repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf("not a git repository: %s", repoPath)
		}
		return errors.Wrap(err, "checking git directory")
	}
	if !info.IsDir() {
		return errors.Newf(".git is not a directory: %s", gitDir)
	}
	return nil
}
