package errors

import (
	crdberrors "github.com/cockroachdb/errors"
)

// New returns an error with a stack trace.
func New(msg string) error { return crdberrors.New(msg) }

// Newf formats an error with a stack trace.
func Newf(format string, args ...any) error { return crdberrors.Newf(format, args...) }

// Wrap annotates err with msg. Wrap returns nil if err is nil.
func Wrap(err error, msg string) error { return crdberrors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Wrapf returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdberrors.Wrapf(err, format, args...)
}

// Is reports whether any error in the chain matches reference, including
// marks added with Mark.
func Is(err, reference error) bool { return crdberrors.Is(err, reference) }

// As finds the first error in the chain that matches target.
func As(err error, target any) bool { return crdberrors.As(err, target) }

// Mark tags err with the identity of reference without changing its message.
func Mark(err, reference error) error { return crdberrors.Mark(err, reference) }

// WithDetail attaches a user-facing hint to err.
func WithDetail(err error, detail string) error { return crdberrors.WithDetail(err, detail) }

// Details returns every hint attached with WithDetail, outermost first.
func Details(err error) []string { return crdberrors.GetAllDetails(err) }

// InvalidArgumentf reports malformed caller input.
func InvalidArgumentf(format string, args ...any) error {
	return crdberrors.Mark(crdberrors.Newf(format, args...), ErrInvalidArgument)
}

// InvalidModef reports a request for the undefined mode.
func InvalidModef(format string, args ...any) error {
	return crdberrors.Mark(crdberrors.Newf(format, args...), ErrInvalidMode)
}

// NotFoundf reports a lookup miss against the current index.
func NotFoundf(format string, args ...any) error {
	return crdberrors.Mark(crdberrors.Newf(format, args...), ErrNotFound)
}

// AlreadyExistsf reports an occupied install destination.
func AlreadyExistsf(format string, args ...any) error {
	return crdberrors.Mark(crdberrors.Newf(format, args...), ErrAlreadyExists)
}

// Fetch marks err as a remote retrieval failure.
func Fetch(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdberrors.Mark(crdberrors.Wrap(err, msg), ErrFetch)
}

// Parse marks err as a malformed listing or entry.
func Parse(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdberrors.Mark(crdberrors.Wrap(err, msg), ErrParse)
}

// Write marks err as a local I/O failure.
func Write(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdberrors.Mark(crdberrors.Wrap(err, msg), ErrWrite)
}
