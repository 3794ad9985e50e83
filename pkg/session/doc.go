// Package session owns the mutable table of active conversational
// sessions, keyed by user id, and the phrase-triggered lifecycle around
// it: NONE → ACTIVE on a recognized start phrase, ACTIVE → ACTIVE on
// ordinary authenticated messages, ACTIVE → NONE on an end phrase or on
// exceeding the idle timeout.
//
// Idle expiry is lazy: it is evaluated on the next touch of a session
// rather than by a background sweeper. A zombie record lingers in memory
// until next accessed — an accepted trade-off for a single-process
// deployment that avoids a timer goroutine.
//
// Mutation of a single user's record is serialized through a per-key
// lock; records of different users are independent. The Manager is the
// sole owner of session state — no other component mutates it.
//
// # Usage
//
//	mgr := session.NewManager(
//		session.WithStartPhrases("happy birthday"),
//		session.WithEndPhrases("over and out", "goodbye buddy"),
//		session.WithIdleTimeout(30*time.Minute),
//	)
//	res, err := mgr.OnRequest(ctx, userID, verdict.Authenticated, string(verdict.Role), msg)
//	switch res.Event {
//	case session.EventStarted: // greet
//	case session.EventEnded:   // farewell, res.Duration available
//	}
package session
