package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (unsupported version, bad flags, configuration).
	ExitUser = 1

	// ExitSystem indicates a system-related error (network, filesystem, remote store).
	ExitSystem = 2
)

// Sentinel errors for the detection and resolution pipeline.
var (
	// ErrUnsupportedVersion indicates no catalog version satisfies a constraint.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrCatalogLoad indicates a version catalog could not be built.
	ErrCatalogLoad = errors.New("version catalog load failed")

	// ErrMalformedManifest indicates a manifest could not be decoded.
	// It is logged by detectors and never returned from a detection pass.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrConfiguration indicates a required setting is absent or invalid.
	ErrConfiguration = errors.New("invalid configuration")
)

// Re-exported helpers so callers need a single errors import.
var (
	New          = errors.New
	Newf         = errors.Newf
	Wrap         = errors.Wrap
	Wrapf        = errors.Wrapf
	Is           = errors.Is
	As           = errors.As
	Mark         = errors.Mark
	WithHint     = errors.WithHint
	Join         = errors.Join
	UnwrapAll    = errors.UnwrapAll
	FlattenHints = errors.FlattenHints
)

// ExitError wraps an error with an exit code and optional suggestion for the CLI.
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

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: platdetect config",
	}
}

// Classify maps a pipeline error onto an ExitError.
// Errors that already carry an ExitError are returned unchanged.
// Hints attached with WithHint become the suggestion when no better one exists.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	suggestion := FlattenHints(err)

	switch {
	case errors.Is(err, ErrUnsupportedVersion):
		if suggestion == "" {
			suggestion = "Run: platdetect versions <platform> to list supported versions"
		}
		return NewUserError(err, suggestion)
	case errors.Is(err, ErrConfiguration):
		if suggestion == "" {
			return NewConfigError(err)
		}
		return NewUserError(err, suggestion)
	case errors.Is(err, ErrCatalogLoad):
		if suggestion == "" {
			suggestion = "Check sdk_storage_url and network access, or disable dynamic_install"
		}
		return NewSystemError(err, suggestion)
	default:
		return NewExitError(err, ExitSystem)
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
