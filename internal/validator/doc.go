// Package validator collects the problems found in a configuration
// document and reports them for `gertty config validate`.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Issue]: Represents a single problem with its document path.
//   - [Result]: Aggregates the issues of one document.
//
// # Basic Usage
//
//	result := validator.ValidateDocument(ctx, config.Options{Path: path})
//	if err := validator.NewReporter(os.Stdout, validator.FormatText).Report(result); err != nil {
//		return err
//	}
//	if result.HasErrors() {
//		// handle validation failure
//	}
package validator
