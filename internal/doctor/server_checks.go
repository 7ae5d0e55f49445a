package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/thoreinstein/gertty/internal/dburi"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/gerrit"
	"github.com/thoreinstein/gertty/internal/git"
	"github.com/thoreinstein/gertty/internal/lockfile"
)

// skipped is the result of a check whose configuration did not resolve.
func skipped(c Check) *CheckResult {
	return newResult(c).set(SeverityInfo, "skipped: configuration did not resolve")
}

// ResolveCheck resolves the selected server.
type ResolveCheck struct {
	target *Target
}

var _ Check = (*ResolveCheck)(nil)

// NewResolveCheck creates a new resolve check.
func NewResolveCheck(t *Target) *ResolveCheck {
	return &ResolveCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *ResolveCheck) Name() string {
	return "server-resolve"
}

// Category returns the grouping for this check.
func (c *ResolveCheck) Category() string {
	return "server"
}

// Run executes the resolve check.
func (c *ResolveCheck) Run(ctx context.Context) *CheckResult {
	result := newResult(c)
	cfg, err := c.target.Config(ctx)
	if err != nil {
		result.FixHint = errors.NewConfigError(err).Suggestion
		return result.set(SeverityError, err.Error())
	}

	result.Details["server"] = cfg.Server
	result.Details["url"] = cfg.URL
	result.Details["auth_type"] = cfg.AuthType
	result.Details["username"] = cfg.Username
	result.Details["palette"] = cfg.PaletteName
	result.Details["keymap"] = cfg.KeymapName
	return result.set(SeverityPass, fmt.Sprintf("resolved server %q (%s)", cfg.Server, cfg.URL))
}

// CABundleCheck verifies the TLS settings of the selected server.
type CABundleCheck struct {
	target *Target
}

var _ Check = (*CABundleCheck)(nil)

// NewCABundleCheck creates a new CA bundle check.
func NewCABundleCheck(t *Target) *CABundleCheck {
	return &CABundleCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *CABundleCheck) Name() string {
	return "ca-bundle"
}

// Category returns the grouping for this check.
func (c *CABundleCheck) Category() string {
	return "network"
}

// Run executes the CA bundle check.
func (c *CABundleCheck) Run(ctx context.Context) *CheckResult {
	cfg, err := c.target.Config(ctx)
	if err != nil {
		return skipped(c)
	}
	result := newResult(c)
	result.Details["verify_ssl"] = cfg.Network.VerifySSL

	if !cfg.Network.VerifySSL {
		result.FixHint = "set verify-ssl: true or point ssl-ca-path at the server's CA"
		return result.set(SeverityWarning, "TLS certificate verification is disabled")
	}
	if cfg.Network.CABundle == "" {
		return result.set(SeverityPass, "using the system trust store")
	}

	result.Details["path"] = cfg.Network.CABundle
	if _, err := cfg.Network.CertPool(); err != nil {
		result.FixHint = "check ssl-ca-path"
		return result.set(SeverityError, err.Error())
	}
	return result.set(SeverityPass, "loaded CA bundle "+cfg.Network.CABundle)
}

// DatabaseCheck verifies that the local database is reachable.
type DatabaseCheck struct {
	target *Target
}

var _ Check = (*DatabaseCheck)(nil)

// NewDatabaseCheck creates a new database check.
func NewDatabaseCheck(t *Target) *DatabaseCheck {
	return &DatabaseCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *DatabaseCheck) Name() string {
	return "database"
}

// Category returns the grouping for this check.
func (c *DatabaseCheck) Category() string {
	return "storage"
}

// Run executes the database check.
func (c *DatabaseCheck) Run(ctx context.Context) *CheckResult {
	cfg, err := c.target.Config(ctx)
	if err != nil {
		return skipped(c)
	}
	result := newResult(c)

	dbTarget, err := dburi.Parse(cfg.DBURI)
	if err != nil {
		result.FixHint = "use a sqlite:/// or postgresql:// dburi"
		return result.set(SeverityError, err.Error())
	}
	result.Details["driver"] = dbTarget.Driver
	if dbTarget.Path != "" {
		result.Details["path"] = dbTarget.Path
	}

	if err := dburi.Probe(ctx, cfg.DBURI); err != nil {
		return result.set(SeverityError, err.Error())
	}
	return result.set(SeverityPass, "database is reachable ("+dbTarget.Driver+")")
}

// LockCheck verifies that no other process holds the lock file.
type LockCheck struct {
	target *Target
}

var _ Check = (*LockCheck)(nil)

// NewLockCheck creates a new lock file check.
func NewLockCheck(t *Target) *LockCheck {
	return &LockCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *LockCheck) Name() string {
	return "lock-file"
}

// Category returns the grouping for this check.
func (c *LockCheck) Category() string {
	return "storage"
}

// Run executes the lock file check.
func (c *LockCheck) Run(ctx context.Context) *CheckResult {
	cfg, err := c.target.Config(ctx)
	if err != nil {
		return skipped(c)
	}
	result := newResult(c)
	result.Details["path"] = cfg.LockFile

	err = lockfile.Probe(cfg.LockFile)
	switch {
	case err == nil:
		return result.set(SeverityPass, "lock file is free")
	case errors.Is(err, lockfile.ErrLocked):
		return result.set(SeverityWarning, "another gertty process holds "+cfg.LockFile)
	default:
		return result.set(SeverityError, err.Error())
	}
}

// GitCheck verifies the git URL and the clone root.
type GitCheck struct {
	target *Target
}

var _ Check = (*GitCheck)(nil)

// NewGitCheck creates a new git check.
func NewGitCheck(t *Target) *GitCheck {
	return &GitCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *GitCheck) Name() string {
	return "git"
}

// Category returns the grouping for this check.
func (c *GitCheck) Category() string {
	return "storage"
}

// Run executes the git check.
func (c *GitCheck) Run(ctx context.Context) *CheckResult {
	cfg, err := c.target.Config(ctx)
	if err != nil {
		return skipped(c)
	}
	result := newResult(c)
	result.Details["git_url"] = cfg.GitURL
	result.Details["git_root"] = cfg.GitRoot

	if err := git.ValidateURL(cfg.GitURL); err != nil {
		result.FixHint = "set git-url to an http(s), ssh or git URL"
		return result.set(SeverityError, err.Error())
	}

	var hints []string
	status, message := SeverityPass, "git root "+cfg.GitRoot+" is usable"
	info, err := os.Stat(cfg.GitRoot)
	switch {
	case errors.Is(err, os.ErrNotExist):
		status, message = SeverityInfo, "git root "+cfg.GitRoot+" will be created on first clone"
	case err != nil:
		status, message = SeverityError, fmt.Sprintf("cannot stat git root: %v", err)
	case !info.IsDir():
		status, message = SeverityError, "git root "+cfg.GitRoot+" is not a directory"
	default:
		if !isDirectoryWritable(cfg.GitRoot) {
			status, message = SeverityWarning, "git root "+cfg.GitRoot+" is not writable"
			hints = append(hints, "chmod u+w "+cfg.GitRoot)
		}
		if info.Mode().Perm()&0o002 != 0 {
			if status == SeverityPass {
				status, message = SeverityWarning, "git root "+cfg.GitRoot+" is world-writable"
			}
			hints = append(hints, "chmod o-w "+cfg.GitRoot)
		}
	}
	result.FixHint = joinHints(hints)
	return result.set(status, message)
}

// ServerCheck contacts the selected server. It is only registered when
// the user asks for online checks.
type ServerCheck struct {
	target *Target
	opts   []gerrit.Option
}

var _ Check = (*ServerCheck)(nil)

// NewServerCheck creates a new server reachability check.
func NewServerCheck(t *Target, opts ...gerrit.Option) *ServerCheck {
	return &ServerCheck{target: t, opts: opts}
}

// Name returns the unique identifier for this check.
func (c *ServerCheck) Name() string {
	return "server-reachable"
}

// Category returns the grouping for this check.
func (c *ServerCheck) Category() string {
	return "server"
}

// Run executes the server check.
func (c *ServerCheck) Run(ctx context.Context) *CheckResult {
	cfg, err := c.target.Config(ctx)
	if err != nil {
		return skipped(c)
	}
	result := newResult(c)

	client, err := gerrit.NewClient(cfg, c.opts...)
	if err != nil {
		return result.set(SeverityError, err.Error())
	}

	version, err := client.Version(ctx)
	if err != nil {
		result.FixHint = "check url, verify-ssl and ssl-ca-path"
		return result.set(SeverityError, err.Error())
	}
	result.Details["version"] = version

	if cfg.Password == "" {
		return result.set(SeverityInfo, fmt.Sprintf("Gerrit %s reachable; no stored password, authentication not checked", version))
	}

	account, err := client.Self(ctx)
	if err != nil {
		var gerr *gerrit.Error
		if errors.As(err, &gerr) && gerr.Unauthorized() {
			result.FixHint = "check username, password and auth-type"
		}
		return result.set(SeverityError, err.Error())
	}
	result.Details["account_id"] = account.ID
	return result.set(SeverityPass, fmt.Sprintf("Gerrit %s reachable; authenticated as %s", version, cfg.Username))
}

// Standard registers the checks gertty doctor runs, in order.
func Standard(r *Runner, t *Target, online bool) {
	r.AddCheck(NewDocumentCheck(t))
	r.AddCheck(NewSchemaCheck(t))
	r.AddCheck(NewPermissionCheck(t))
	r.AddCheck(NewResolveCheck(t))
	r.AddCheck(NewCABundleCheck(t))
	r.AddCheck(NewDatabaseCheck(t))
	r.AddCheck(NewLockCheck(t))
	r.AddCheck(NewGitCheck(t))
	if online {
		r.AddCheck(NewServerCheck(t))
	}
}
