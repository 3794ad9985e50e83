package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/voicegate/pkg/authn"
)

// Prompt carries everything a responder may condition on.
type Prompt struct {
	Message string
	UserID  string
	Role    authn.Role

	// SessionMessageCount is the number of messages absorbed by the
	// active session before this one, zero when no session is active.
	SessionMessageCount int
}

// Responder produces the conversational answer for one prompt. The
// gate layer has already run; implementations never see requests the
// caller was not allowed to make.
type Responder interface {
	Respond(ctx context.Context, p Prompt) (string, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, p Prompt) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// PersonaResponder is a deterministic built-in responder used when no
// external model is wired. It answers a handful of intents and falls
// back to acknowledging the message, which keeps the full pipeline
// exercisable without network access.
type PersonaResponder struct {
	name string
	now  func() time.Time
}

// NewPersonaResponder creates the built-in responder. The name is used
// when the persona introduces itself.
func NewPersonaResponder(name string) *PersonaResponder {
	if name == "" {
		name = "Buddy"
	}
	return &PersonaResponder{name: name, now: time.Now}
}

func (r *PersonaResponder) Respond(_ context.Context, p Prompt) (string, error) {
	msg := strings.ToLower(p.Message)
	switch {
	case strings.Contains(msg, "who are you") || strings.Contains(msg, "your name"):
		return fmt.Sprintf("I'm %s, your personal assistant.", r.name), nil
	case strings.Contains(msg, "time"):
		return fmt.Sprintf("It's %s.", r.now().Format("3:04 PM")), nil
	case strings.Contains(msg, "date") || strings.Contains(msg, "today"):
		return fmt.Sprintf("Today is %s.", r.now().Format("Monday, January 2")), nil
	case strings.Contains(msg, "hello") || strings.Contains(msg, "hi "):
		return fmt.Sprintf("Hello, %s. What can I do for you?", p.UserID), nil
	case strings.Contains(msg, "thank"):
		return "Anytime. That's what I'm here for.", nil
	case p.Message == "":
		return "I didn't catch that. Could you say it again?", nil
	default:
		return fmt.Sprintf("I heard you: %q. I'm a modest built-in persona, so that's as deep as my insight goes.", p.Message), nil
	}
}
