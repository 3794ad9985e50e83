package authn

import (
	"strings"

	"github.com/dmitrymomot/voicegate/pkg/device"
	"github.com/dmitrymomot/voicegate/pkg/extract"
	"github.com/dmitrymomot/voicegate/pkg/jwt"
)

// Strategy is one authentication layer. Authenticate reports "no match"
// through the boolean; it never returns an error. A layer that cannot
// decide simply declines, letting the next layer try.
type Strategy interface {
	// Method names the layer for audit records.
	Method() Method

	// Authenticate inspects the bundle and returns a verdict when the
	// layer's signal is present and valid.
	Authenticate(bundle extract.Bundle) (Verdict, bool)
}

type tokenStrategy struct {
	codec *jwt.Codec
}

// NewTokenStrategy authenticates by verified session token. Expired or
// invalid tokens do not fail the request; the layer declines and the
// lower-priority layers take over.
func NewTokenStrategy(codec *jwt.Codec) Strategy {
	return &tokenStrategy{codec: codec}
}

func (s *tokenStrategy) Method() Method { return MethodSessionToken }

func (s *tokenStrategy) Authenticate(bundle extract.Bundle) (Verdict, bool) {
	if bundle.Token == "" {
		return Verdict{}, false
	}

	id, err := s.codec.Verify(bundle.Token)
	if err != nil {
		return Verdict{}, false
	}

	role := ParseRole(id.Role)
	if role == RoleUnknown {
		// A token we signed never carries an unknown role; treat it as a
		// structurally invalid credential and decline.
		return Verdict{}, false
	}

	return Verdict{
		Authenticated: true,
		UserID:        id.UserID,
		Role:          role,
		Method:        MethodSessionToken,
	}, true
}

type passphraseStrategy struct {
	passphrase   string
	masterUserID string
	codec        *jwt.Codec
}

// NewPassphraseStrategy authenticates when the sanitized message contains
// the configured master passphrase, case-insensitively. A match grants the
// master role and issues a fresh session token as a side effect.
func NewPassphraseStrategy(passphrase, masterUserID string, codec *jwt.Codec) Strategy {
	return &passphraseStrategy{
		passphrase:   strings.ToLower(strings.TrimSpace(passphrase)),
		masterUserID: masterUserID,
		codec:        codec,
	}
}

func (s *passphraseStrategy) Method() Method { return MethodPassphrase }

func (s *passphraseStrategy) Authenticate(bundle extract.Bundle) (Verdict, bool) {
	if s.passphrase == "" || bundle.Message == "" {
		return Verdict{}, false
	}
	if !strings.Contains(strings.ToLower(bundle.Message), s.passphrase) {
		return Verdict{}, false
	}

	verdict := Verdict{
		Authenticated: true,
		UserID:        s.masterUserID,
		Role:          RoleMaster,
		Method:        MethodPassphrase,
	}

	// Best effort: the verdict stands even if token minting fails, the
	// caller just re-states the passphrase next turn.
	if s.codec != nil {
		if token, err := s.codec.Issue(s.masterUserID, string(RoleMaster)); err == nil {
			verdict.IssuedToken = token
		}
	}

	return verdict, true
}

type deviceStrategy struct {
	matcher      *device.Matcher
	masterUserID string
}

// NewDeviceStrategy authenticates requests from allow-listed client
// signatures. Matched devices are granted the master role outright — the
// deliberate frictionless-trusted-client trade-off; treat the pattern set
// as a sensitive configuration surface.
func NewDeviceStrategy(matcher *device.Matcher, masterUserID string) Strategy {
	return &deviceStrategy{matcher: matcher, masterUserID: masterUserID}
}

func (s *deviceStrategy) Method() Method { return MethodDevice }

func (s *deviceStrategy) Authenticate(bundle extract.Bundle) (Verdict, bool) {
	if s.matcher == nil {
		return Verdict{}, false
	}

	fp, ok := s.matcher.Match(bundle.Headers)
	if !ok {
		return Verdict{}, false
	}

	return Verdict{
		Authenticated: true,
		UserID:        s.masterUserID,
		Role:          RoleMaster,
		Method:        MethodDevice,
		DeviceID:      fp.Value,
	}, true
}
