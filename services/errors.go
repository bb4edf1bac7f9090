package services

import "errors"

// Sentinel errors shared by the matching engine and its stores. Callers
// branch with errors.Is; error text is never inspected.
var (
	// ErrNotFound means a profile or post does not exist. Batch callers drop
	// the item; it is fatal only when the requesting user's own profile is
	// missing.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means a storage dependency failed transiently. This
	// layer never retries; retry policy belongs to the caller.
	ErrUnavailable = errors.New("dependency unavailable")

	// ErrAlreadyExists means a conditional create lost to an earlier write.
	// For match creation this is success, not failure.
	ErrAlreadyExists = errors.New("already exists")
)
