package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Issue is a single schema violation.
type Issue struct {
	// Path is the JSON pointer of the offending value, e.g. "/servers/0/url".
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s", path, i.Message)
}

// ViolationError reports every way a document breaks the schema.
type ViolationError struct {
	Issues []Issue
}

func (e *ViolationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("configuration does not match schema: %s", e.Issues[0])
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("configuration does not match schema (%d issues): %s",
		len(e.Issues), strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrSchemaViolation.
func (e *ViolationError) Unwrap() error {
	return errors.ErrSchemaViolation
}

// Validate checks a decoded document against the schema. The document must
// use JSON value types: map[string]any, []any, string, float64 or int,
// bool and nil. Validation never modifies doc.
func Validate(doc any) error {
	sch, err := compiled()
	if err != nil {
		return errors.Wrap(err, "compiling configuration schema")
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return errors.Wrap(err, "validating configuration")
	}
	return &ViolationError{Issues: collectIssues(verr)}
}

func collectIssues(verr *jsonschema.ValidationError) []Issue {
	var issues []Issue
	seen := make(map[Issue]bool)
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			issue := Issue{Path: e.InstanceLocation, Message: e.Message}
			if !seen[issue] {
				seen[issue] = true
				issues = append(issues, issue)
			}
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues
}
