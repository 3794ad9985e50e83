// Package access maps an authentication verdict plus a requested
// capability onto an allow/deny decision.
//
// Capabilities name operation classes ("chat.general", "admin.status");
// roles are granted capability sets as data, with inheritance
// (guest ⊂ standard ⊂ master) and trailing wildcards ("admin.*"). The
// grant table is configuration, not code, so which capability unlocks at
// which role is auditable without touching control flow.
//
// Denial is a pure decision returned to the caller to translate into a
// transport-level rejection; this package never raises or writes a
// response itself.
//
// # Usage
//
//	ctrl, err := access.NewController(access.DefaultGrants())
//	if !ctrl.Check(verdict, access.CapabilityAdminStatus) {
//		// respond with a 403 equivalent
//	}
package access
