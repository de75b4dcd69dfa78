// Package errdefs defines the error kinds shared across the batch pipeline.
// Errors are classified by wrapping one of the sentinels below and matched
// with errors.Is.
package errdefs

import "errors"

var (
	// ErrInvalidInput marks bad user input: an empty prefix, an empty
	// selection, or a selection pattern that matches nothing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPath marks a destination that cannot be resolved to an absolute
	// writable location, including a relative path with no saved project
	// to anchor it.
	ErrPath = errors.New("path error")

	// ErrExport wraps a failure reported by the exporter. The exporter's
	// message is passed through verbatim.
	ErrExport = errors.New("export error")
)

// IsInvalidInput reports whether err is of kind ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsPath reports whether err is of kind ErrPath.
func IsPath(err error) bool { return errors.Is(err, ErrPath) }

// IsExport reports whether err is of kind ErrExport.
func IsExport(err error) bool { return errors.Is(err, ErrExport) }
