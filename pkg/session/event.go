package session

import "time"

// Event classifies what a single request did to the user's session.
type Event string

const (
	// EventNone means the request had no lifecycle effect: no session
	// existed and the message was not a start phrase.
	EventNone Event = "none"

	// EventStarted means a new session was created for the user.
	EventStarted Event = "started"

	// EventContinued means an existing session absorbed the message and
	// its activity timestamp and message count advanced.
	EventContinued Event = "continued"

	// EventEnded means the session was closed, either by an end phrase
	// or lazily on idle timeout.
	EventEnded Event = "ended"
)

// Result describes the outcome of Manager.OnRequest.
type Result struct {
	Event Event

	// Session is a snapshot of the record the event applies to. For
	// EventStarted and EventContinued it reflects the state after the
	// mutation; for EventEnded it is the final state of the closed
	// session. Zero value when Event is EventNone.
	Session Session

	// Duration is the total session length, populated on EventEnded.
	Duration time.Duration

	// Expired is set on EventEnded when the session was closed by the
	// idle timeout rather than an explicit end phrase.
	Expired bool
}
