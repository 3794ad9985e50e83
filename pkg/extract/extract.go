package extract

import (
	"strings"
)

const (
	// DefaultMaxMessageLength bounds the sanitized message size in runes.
	DefaultMaxMessageLength = 4096

	authorizationHeader = "authorization"
	sessionTokenHeader  = "x-session-token"
	bearerPrefix        = "bearer "
)

// Bundle is the normalized set of identity signals for one request.
type Bundle struct {
	// Token is the bearer-style session token, empty when absent.
	Token string

	// Message is the sanitized free-text message.
	Message string

	// DeclaredUserID is the caller-declared identifier, unauthenticated.
	DeclaredUserID string

	// Headers holds the validated request headers with lower-cased names.
	Headers map[string]string
}

// Extractor validates raw request input and produces credential bundles.
type Extractor struct {
	maxMessageLength int
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithMaxMessageLength overrides the message length cap. Non-positive
// values are ignored.
func WithMaxMessageLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxMessageLength = n
		}
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxMessageLength: DefaultMaxMessageLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract validates headers, sanitizes the message and declared user id,
// and locates a bearer-style session token. It fails with an error
// satisfying ErrMalformedInput before any authentication layer is invoked.
func (e *Extractor) Extract(headers map[string]string, message, userID string) (Bundle, error) {
	normalized := make(map[string]string, len(headers))
	for name, value := range headers {
		if containsCRLF(name) || containsCRLF(value) {
			return Bundle{}, ErrHeaderInjection
		}
		normalized[strings.ToLower(strings.TrimSpace(name))] = value
	}

	userID = strings.TrimSpace(userID)
	if !isPrintable(userID) {
		return Bundle{}, ErrInvalidUserID
	}

	return Bundle{
		Token:          tokenFromHeaders(normalized),
		Message:        e.sanitizeMessage(message),
		DeclaredUserID: userID,
		Headers:        normalized,
	}, nil
}

// tokenFromHeaders prefers the Authorization bearer form and falls back to
// the dedicated session token header used by shortcut-style voice clients.
func tokenFromHeaders(headers map[string]string) string {
	if auth := headers[authorizationHeader]; auth != "" {
		if len(auth) > len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(auth[len(bearerPrefix):])
		}
	}
	return strings.TrimSpace(headers[sessionTokenHeader])
}

func containsCRLF(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
