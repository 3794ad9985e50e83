package access

import "errors"

var (
	// ErrAccessDenied is returned when the role lacks the capability.
	ErrAccessDenied = errors.New("access.denied")

	// ErrInvalidRole is returned when a role has no grant entry.
	ErrInvalidRole = errors.New("access.invalid_role")

	// ErrCircularInheritance is returned when grant inheritance loops.
	ErrCircularInheritance = errors.New("access.circular_inheritance")
)
