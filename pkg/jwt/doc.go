// Package jwt implements the signed, time-limited session token codec used
// by the authenticator.
//
// A token binds {user id, role, issued-at, expires-at} under an
// HMAC-SHA256 signature (HS256). Verification is all-or-nothing: a token
// whose signature does not verify, whose required claims are absent, or
// whose expiry has passed is rejected outright — no field of an unverified
// token is ever trusted.
//
// The signing secret is held by the Codec instance created once at startup;
// there is no ambient global state.
//
// # Usage
//
//	codec, err := jwt.NewCodec([]byte(secret), 24*time.Hour)
//	token, err := codec.Issue("buddy", "master")
//	id, err := codec.Verify(token)   // id.UserID, id.Role
//
// Errors are sentinel values: errors.Is(err, jwt.ErrExpiredToken)
// distinguishes an expired token from a structurally invalid one.
package jwt
