// Package errors provides error handling conventions for platdetect.
//
// It re-exports the github.com/cockroachdb/errors helpers used throughout the
// module, defines the sentinel errors of the detection pipeline, and an
// ExitError type carrying a process exit code.
//
// # Sentinel Errors
//
// Pipeline failures are matchable with [errors.Is] at any wrapping depth:
//
//	if errors.Is(err, errors.ErrUnsupportedVersion) {
//	    // no catalog version satisfies the declared constraint
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Unsupported version, invalid flags or configuration
//   - ExitSystem (2): Catalog load failures, I/O and network errors
//
// # ExitError
//
// [Classify] turns any pipeline error into an [ExitError]:
//
//	exitErr := errors.Classify(err)
//	if exitErr.Suggestion != "" {
//	    fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
//	}
//	os.Exit(exitErr.Code)
package errors
