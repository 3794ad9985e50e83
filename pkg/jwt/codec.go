package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JWT header constants required by RFC 7519.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256" // HMAC-SHA256, the only accepted algorithm
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims is the signed payload of a session token.
type Claims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Identity is the verified result of decoding a session token.
type Identity struct {
	UserID string
	Role   string
}

// Codec issues and verifies session tokens. It is stateless apart from the
// signing secret and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the Codec.
type Option func(*Codec)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec creates a Codec with the given signing secret and token TTL.
// The secret should be at least 32 bytes for adequate HMAC-SHA256 security.
// A non-positive ttl falls back to DefaultTTL.
func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Codec{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token binding userID and role, valid from now
// until now+TTL.
func (c *Codec) Issue(userID, role string) (string, error) {
	if userID == "" || role == "" {
		return "", ErrInvalidClaims
	}

	now := c.now()
	claims := Claims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.ttl).Unix(),
	}

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + c.sign(payload), nil
}

// Verify checks the token signature, algorithm, claim structure, and expiry.
// It returns the bound identity only when every check passes.
func (c *Codec) Verify(token string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, ErrInvalidToken
	}

	// Signature first: nothing in an unsigned payload is trusted, including
	// the header that names the algorithm.
	payload := parts[0] + "." + parts[1]
	expected := c.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return Identity{}, ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return Identity{}, ErrInvalidToken
	}
	if h.Algorithm != headerAlgorithm {
		return Identity{}, ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Identity{}, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Role == "" || claims.ExpiresAt == 0 {
		return Identity{}, ErrInvalidClaims
	}
	if c.now().Unix() > claims.ExpiresAt {
		return Identity{}, ErrExpiredToken
	}

	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// sign creates a base64url-encoded HMAC-SHA256 signature for the payload.
func (c *Codec) sign(payload string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
