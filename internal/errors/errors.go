package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
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

// Sentinel errors for the failure kinds reported to callers.
var (
	// ErrInvalidArgument indicates malformed caller input such as an empty
	// keyword or a filename that escapes its directory.
	ErrInvalidArgument = crdberrors.New("invalid argument")

	// ErrInvalidMode indicates an install was requested for the undefined mode.
	ErrInvalidMode = crdberrors.New("invalid mode")

	// ErrNotFound indicates the artifact or collection is not in the current index.
	ErrNotFound = crdberrors.New("not found")

	// ErrFetch indicates the remote listing or content could not be retrieved,
	// or the listing yielded no usable artifacts.
	ErrFetch = crdberrors.New("fetch failed")

	// ErrParse indicates a malformed remote listing or listing entry.
	ErrParse = crdberrors.New("parse failed")

	// ErrAlreadyExists indicates the local install destination is occupied.
	ErrAlreadyExists = crdberrors.New("already exists")

	// ErrWrite indicates a local I/O failure while installing.
	ErrWrite = crdberrors.New("write failed")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdberrors.New("invalid configuration")
)

// Kind is the stable, wire-facing name of a failure category.
type Kind string

// Kind constants.
const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindInvalidMode     Kind = "INVALID_MODE"
	KindNotFound        Kind = "NOT_FOUND"
	KindFetch           Kind = "FETCH_ERROR"
	KindParse           Kind = "PARSE_ERROR"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindWrite           Kind = "WRITE_ERROR"
	KindInvalidConfig   Kind = "INVALID_CONFIG"
	KindInternal        Kind = "INTERNAL"
)

// kinds is ordered: the first sentinel found in the chain wins.
var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrInvalidMode, KindInvalidMode},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrWrite, KindWrite},
	{ErrFetch, KindFetch},
	{ErrParse, KindParse},
	{ErrInvalidConfig, KindInvalidConfig},
}

// KindOf reports the kind of err. Errors that carry no known mark are
// KindInternal; a nil error has an empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if crdberrors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindInternal
}

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
		Suggestion: "Run: agentops config show",
	}
}

// ExitFor converts err into an ExitError whose code follows its kind. An
// existing ExitError in the chain is returned as is. The suggestion is taken
// from the first detail attached with WithDetail, if any.
func ExitFor(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if crdberrors.As(err, &exitErr) {
		return exitErr
	}

	suggestion := ""
	if details := crdberrors.GetAllDetails(err); len(details) > 0 {
		suggestion = details[0]
	}

	switch KindOf(err) {
	case KindInvalidArgument, KindInvalidMode, KindNotFound, KindAlreadyExists, KindInvalidConfig:
		return NewUserError(err, suggestion)
	default:
		return NewSystemError(err, suggestion)
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
