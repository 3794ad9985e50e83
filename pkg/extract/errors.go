package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is the base error for all structural input failures.
	// Transport layers translate it into a 400-class rejection.
	ErrMalformedInput = errors.New("extract.malformed_input")

	// ErrHeaderInjection indicates a header name or value with embedded CR/LF.
	ErrHeaderInjection = fmt.Errorf("%w: header contains CR or LF", ErrMalformedInput)

	// ErrInvalidUserID indicates a declared user identifier with non-printable characters.
	ErrInvalidUserID = fmt.Errorf("%w: user id contains non-printable characters", ErrMalformedInput)
)
