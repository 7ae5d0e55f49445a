// Package errors provides error handling conventions for the gertty CLI.
//
// This package defines sentinel errors for the configuration failure
// taxonomy, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions. The constructors and
// inspection helpers of github.com/cockroachdb/errors are re-exported so
// callers only need a single errors import.
//
// # Sentinel Errors
//
// Every startup failure wraps exactly one sentinel, so callers can branch on
// the failure class with [errors.Is]:
//
//	if errors.Is(err, gerrors.ErrMissingDocument) {
//	    // print the sample configuration guidance
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid document, unknown server, etc.)
//   - ExitSystem (2): System-related error (I/O, network, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [errors.Unwrap] and [errors.As].
package errors
