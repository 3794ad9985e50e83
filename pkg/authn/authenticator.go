package authn

import (
	"github.com/dmitrymomot/voicegate/pkg/device"
	"github.com/dmitrymomot/voicegate/pkg/extract"
	"github.com/dmitrymomot/voicegate/pkg/jwt"
)

// GuestUserID is the identity assigned when the caller declares none.
const GuestUserID = "guest"

// Authenticator evaluates strategies in the order given and short-circuits
// on the first match. It is stateless and safe for concurrent use.
type Authenticator struct {
	strategies []Strategy
}

// New creates an Authenticator from an ordered strategy list. Order is the
// precedence contract — callers building a custom list own that contract.
func New(strategies ...Strategy) *Authenticator {
	return &Authenticator{strategies: strategies}
}

// NewDefault assembles the standard precedence:
// session token > passphrase > device > guest fallback.
func NewDefault(codec *jwt.Codec, matcher *device.Matcher, passphrase, masterUserID string) *Authenticator {
	return New(
		NewTokenStrategy(codec),
		NewPassphraseStrategy(passphrase, masterUserID, codec),
		NewDeviceStrategy(matcher, masterUserID),
	)
}

// Authenticate returns exactly one verdict per bundle. It never fails:
// when no strategy matches, the guest fallback applies.
func (a *Authenticator) Authenticate(bundle extract.Bundle) Verdict {
	for _, s := range a.strategies {
		if verdict, ok := s.Authenticate(bundle); ok {
			return verdict
		}
	}

	userID := bundle.DeclaredUserID
	if userID == "" {
		userID = GuestUserID
	}

	return Verdict{
		Authenticated: false,
		UserID:        userID,
		Role:          RoleGuest,
		Method:        MethodGuest,
	}
}
