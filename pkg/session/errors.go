package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no record exists for the
	// requested user id.
	ErrNotFound = errors.New("session: not found")

	// ErrEmptyUserID is returned when an operation is attempted with an
	// empty user id.
	ErrEmptyUserID = errors.New("session: empty user id")
)
