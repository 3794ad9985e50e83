package authn

// Role is the privilege level bound to a verdict.
type Role string

const (
	// RoleMaster holds full access including admin capabilities.
	RoleMaster Role = "master"
	// RoleStandard holds general chat plus session management.
	RoleStandard Role = "standard"
	// RoleGuest holds general chat only.
	RoleGuest Role = "guest"
	// RoleUnknown is the zero state; an authenticated verdict never carries it.
	RoleUnknown Role = "unknown"
)

// ParseRole maps a string onto a known role, returning RoleUnknown for
// anything else. Token claims pass through here so a tampered or legacy
// role string can never smuggle an unrecognized privilege level.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleMaster, RoleStandard, RoleGuest:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Method identifies the layer that produced a verdict, for audit purposes.
type Method string

const (
	MethodSessionToken Method = "session_token"
	MethodPassphrase   Method = "passphrase"
	MethodDevice       Method = "device"
	MethodGuest        Method = "guest"
)

// Verdict is the authenticator's decision for one request.
// Invariant: Authenticated implies Role != RoleUnknown.
type Verdict struct {
	Authenticated bool

	// UserID is the resolved identity: the token subject, the configured
	// master identity, or the caller-declared id for guests.
	UserID string

	Role Role

	// Method records which layer matched. Exactly one per verdict.
	Method Method

	// IssuedToken carries a freshly minted session token when the
	// passphrase layer matched, so callers can return it and skip
	// re-stating the passphrase on subsequent requests.
	IssuedToken string

	// DeviceID is the matched client signature value, when Method is
	// MethodDevice.
	DeviceID string
}

// IsMaster reports whether the verdict grants the elevated role.
func (v Verdict) IsMaster() bool {
	return v.Authenticated && v.Role == RoleMaster
}
