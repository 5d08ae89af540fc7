package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Callers match
// with errors.Is and map them to HTTP statuses at the handler boundary.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint (user email, collection slug, ...).
	ErrDuplicate = errors.New("record already exists")
)
