package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/schema"
)

// DocumentCheck verifies that the configuration document exists and parses.
type DocumentCheck struct {
	target *Target
}

var _ Check = (*DocumentCheck)(nil)

// NewDocumentCheck creates a new document syntax check.
func NewDocumentCheck(t *Target) *DocumentCheck {
	return &DocumentCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *DocumentCheck) Name() string {
	return "document-syntax"
}

// Category returns the grouping for this check.
func (c *DocumentCheck) Category() string {
	return "document"
}

// Run executes the document syntax check.
func (c *DocumentCheck) Run(_ context.Context) *CheckResult {
	result := newResult(c)
	path := c.target.Path()
	result.Details["path"] = path

	raw, _, err := c.target.Raw()
	if err != nil {
		var missing *document.MissingError
		if errors.As(err, &missing) {
			result.FixHint = "gertty config sample --write"
			return result.set(SeverityError, "configuration file not found: "+path)
		}
		result.FixHint = "review the error details and fix the syntax of the file"
		return result.set(SeverityError, formatParseError(err))
	}

	result.Details["format"] = string(document.FormatFor(path))
	if servers, ok := raw["servers"].([]any); ok {
		result.Details["servers"] = len(servers)
	}
	return result.set(SeverityPass, "parsed "+path)
}

// formatParseError extracts position information from TOML decode errors.
// yaml.v3 errors already carry the line number.
func formatParseError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return err.Error()
}

// SchemaCheck validates the parsed document against the schema.
type SchemaCheck struct {
	target *Target
}

var _ Check = (*SchemaCheck)(nil)

// NewSchemaCheck creates a new schema check.
func NewSchemaCheck(t *Target) *SchemaCheck {
	return &SchemaCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *SchemaCheck) Name() string {
	return "document-schema"
}

// Category returns the grouping for this check.
func (c *SchemaCheck) Category() string {
	return "document"
}

// Run executes the schema check.
func (c *SchemaCheck) Run(_ context.Context) *CheckResult {
	result := newResult(c)

	raw, _, err := c.target.Raw()
	if err != nil {
		return result.set(SeverityInfo, "skipped: document could not be read")
	}

	err = schema.Validate(raw)
	if err == nil {
		return result.set(SeverityPass, "document matches the schema")
	}

	var verr *schema.ViolationError
	if !errors.As(err, &verr) {
		return result.set(SeverityError, err.Error())
	}
	issues := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		issues = append(issues, issue.String())
	}
	result.Details["issues"] = issues
	result.FixHint = "gertty config validate"
	return result.set(SeverityError, fmt.Sprintf("document has %d schema violation(s)", len(issues)))
}

// PermissionCheck verifies that a document holding a password is private
// to its owner, and that no document is world-writable.
type PermissionCheck struct {
	PermissionFixer
	target *Target
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck creates a new permission check.
func NewPermissionCheck(t *Target) *PermissionCheck {
	return &PermissionCheck{target: t}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string {
	return "document-permissions"
}

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string {
	return "document"
}

// Run executes the permission check.
func (c *PermissionCheck) Run(_ context.Context) *CheckResult {
	result := newResult(c)
	c.setIssues(nil)

	if runtime.GOOS == "windows" {
		return result.set(SeverityInfo, "skipped: file modes are not enforced on windows")
	}

	path := c.target.Path()
	info, err := os.Stat(path)
	if err != nil {
		return result.set(SeverityInfo, "skipped: document could not be read")
	}
	mode := info.Mode()
	result.Details["path"] = path
	result.Details["permissions"] = formatPermissions(mode)

	raw, _, _ := c.target.Raw()
	password := storesPassword(raw)
	result.Details["stores_password"] = password

	var issues []pathIssue
	switch {
	case password && config.CheckPermissions(path, mode) != nil:
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "file",
			Problem:     fmt.Sprintf("file contains a password and has mode %s, expected %s", formatPermissions(mode), formatPermissions(config.RequiredMode)),
			Severity:    SeverityError,
			Permissions: formatPermissions(mode),
			Fixable:     true,
			FixHint:     "chmod 0600 " + path,
		})
	case mode.Perm()&0o002 != 0:
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "file",
			Problem:     "file is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(mode),
			Fixable:     true,
			FixHint:     "chmod 0600 " + path,
		})
	}
	c.setIssues(issues)

	if len(issues) == 0 {
		return result.set(SeverityPass, "permissions "+formatPermissions(mode)+" are acceptable")
	}
	issue := issues[0]
	result.Fixable = issue.Fixable
	result.FixHint = issue.FixHint
	return result.set(issue.Severity, issue.Problem)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fixable     bool
	FixHint     string
}

// formatPermissions returns a human-readable permission string (e.g., "0600").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) bool {
	tmpFile, err := os.CreateTemp(path, ".gertty-doctor-test-*")
	if err != nil {
		return false
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	os.Remove(tmpPath)
	return true
}

func joinHints(hints []string) string {
	return strings.Join(hints, "; ")
}
