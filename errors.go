package pathkit

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common path errors
var (
	ErrNotExist     = errors.New("file does not exist")
	ErrExist        = errors.New("file already exists")
	ErrNotDir       = errors.New("not a directory")
	ErrIsDir        = errors.New("is a directory")
	ErrNotSupported = errors.New("operation not supported")
	ErrNotAllowed   = errors.New("operation not allowed")

	// ErrPathNotFound is returned when a path cannot be mapped onto anything
	// that exists. A malformed path reports the same error.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotImplemented is returned for operations a backend does not provide.
	ErrNotImplemented = errors.New("not implemented")
	// ErrUnknownScheme is returned when no backend is registered for a scheme.
	ErrUnknownScheme = errors.New("unknown scheme")
	// ErrInvalidSlot is returned for a favorite slot outside 0..10.
	ErrInvalidSlot = errors.New("invalid favorite slot")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// NewPathError returns a PathError for op on path.
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}

// WrapPathErr wraps err in a PathError. It returns nil for a nil err.
func WrapPathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Err: err}
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist. Errors from the os package are recognized too.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist) || errors.Is(err, fs.ErrNotExist)
}

// IsExist reports whether an error indicates that a file or directory
// already exists
func IsExist(err error) bool {
	return errors.Is(err, ErrExist) || errors.Is(err, fs.ErrExist)
}

// IsPathNotFound reports whether a path could not be resolved.
func IsPathNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}

// IsNotImplemented reports whether an operation is not provided by a backend.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
