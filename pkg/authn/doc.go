// Package authn produces one authentication verdict per request by
// evaluating an ordered list of strategies in strict descending priority:
//
//  1. session token — a previously issued credential always wins
//  2. passphrase — the explicit, user-controlled override; a successful
//     match also issues a fresh session token for subsequent requests
//  3. device — trusted-client signature, lowest-friction signal
//  4. guest fallback — always produces a verdict, never an error
//
// The ordering is a contract, not an implementation detail: a stale or
// invalid token must not force re-authentication every turn, and a device
// signal must never override an explicit credential. Strategies report
// "no match" through a boolean; only malformed input upstream and
// structurally broken tokens ever produce errors, and those are folded
// into the guest fallback rather than propagated — a single bad credential
// never blocks access outright.
//
// # Usage
//
//	auth := authn.New(
//		authn.NewTokenStrategy(codec),
//		authn.NewPassphraseStrategy("happy birthday", "buddy", codec),
//		authn.NewDeviceStrategy(matcher, "buddy"),
//	)
//	verdict := auth.Authenticate(bundle)
package authn
