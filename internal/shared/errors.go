package shared

import "errors"

var (
	// ErrUnauthorized indicates a missing or unverifiable credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPermissionDenied indicates a verified identity with an insufficient role.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound indicates the referenced entity is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict indicates a duplicate-creation race.
	ErrConflict = errors.New("conflict")
	// ErrDependencyFailure indicates an external dependency failed after local state was written.
	ErrDependencyFailure = errors.New("dependency failure")
)
