// Package errs defines the error kinds shared across the persistence layer.
//
// Every failure surfaced by storage or the entity modules wraps exactly one
// of these sentinels, so callers classify errors with errors.Is instead of
// matching message text.
package errs

import "errors"

var (
	// ErrNotFound reports that a point lookup or unique-column lookup
	// matched no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a failed uniqueness precondition, e.g. renaming
	// a product to a name another row already owns.
	ErrDuplicate = errors.New("duplicate value")

	// ErrInvalidArgument reports caller input rejected before any storage
	// mutation, e.g. a non-positive basket quantity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO reports that the schema script could not be read at
	// initialization. The wrap chain keeps the underlying os error, so
	// errors.Is(err, os.ErrNotExist) and errors.Is(err, os.ErrPermission)
	// stay distinguishable.
	ErrIO = errors.New("io failure")

	// ErrStorage carries any storage-engine error, propagated unmodified
	// apart from the wrap.
	ErrStorage = errors.New("storage failure")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicate reports whether err wraps ErrDuplicate.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }
