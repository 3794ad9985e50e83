package jwt

import "errors"

var (
	// ErrInvalidToken indicates a structurally malformed token.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrExpiredToken indicates a token whose expiry has passed.
	ErrExpiredToken = errors.New("jwt: token is expired")

	// ErrInvalidSignature indicates a signature that does not verify.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrUnexpectedSigningMethod indicates a header algorithm other than HS256.
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")

	// ErrInvalidClaims indicates required claims are absent or malformed.
	ErrInvalidClaims = errors.New("jwt: invalid claims")

	// ErrMissingSigningKey is returned when a Codec is created without a secret.
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
)
