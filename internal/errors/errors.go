package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the configuration failure taxonomy.
var (
	// ErrMissingDocument indicates the configuration document does not exist.
	ErrMissingDocument = crdb.New("configuration file not found")

	// ErrSchemaViolation indicates the document does not match the schema.
	ErrSchemaViolation = crdb.New("configuration does not match schema")

	// ErrInsecurePermissions indicates a document holding a password is
	// readable or writable by someone other than its owner.
	ErrInsecurePermissions = crdb.New("insecure configuration file permissions")

	// ErrServerNotFound indicates the requested server is not in the document.
	ErrServerNotFound = crdb.New("server not found")

	// ErrPaletteNotFound indicates the requested palette does not exist.
	ErrPaletteNotFound = crdb.New("palette not found")

	// ErrKeymapNotFound indicates the requested keymap does not exist.
	ErrKeymapNotFound = crdb.New("keymap not found")

	// ErrPatternCompile indicates a regular expression in the document is invalid.
	ErrPatternCompile = crdb.New("invalid pattern")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Re-exported helpers from github.com/cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Mark   = crdb.Mark
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a suggestion
// chosen from the failure class of err.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestionFor(err),
	}
}

func suggestionFor(err error) string {
	switch {
	case crdb.Is(err, ErrMissingDocument):
		return "Run: gertty config sample --write"
	case crdb.Is(err, ErrInsecurePermissions):
		return "Restrict the file to its owner: chmod 0600 <config file>"
	case crdb.Is(err, ErrServerNotFound):
		return "Run: gertty servers list"
	case crdb.Is(err, ErrSchemaViolation):
		return "Run: gertty config validate"
	default:
		return "Run: gertty doctor"
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
