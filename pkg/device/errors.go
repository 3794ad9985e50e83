package device

import "errors"

var (
	// ErrInvalidPattern is returned when an allow-list pattern cannot be compiled.
	ErrInvalidPattern = errors.New("device.invalid_pattern")
)
