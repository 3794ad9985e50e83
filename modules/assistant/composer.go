package assistant

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/voicegate/pkg/authn"
)

// unlockHints nudge unauthenticated callers toward the passphrase
// without stating it. One is picked at random per denial.
var unlockHints = []string{
	"Well hello there! I sense great potential in you, but I'm running in safe mode. There's a special phrase that unlocks my full personality...",
	"Ah, a new voice! I'm like a present that needs the right words to unwrap my true capabilities. What phrase might that be?",
	"I'm sensing you might want access to my premium features. Hint: think about the day when wishes come true and candles get blown out.",
	"My advanced features are locked behind a phrase that involves cake, wishes, and getting older. Any guesses?",
	"Houston, we have an authentication situation. I need the launch codes, specifically the ones people sing once a year with cake involved.",
	"You've found me, but I'm in stealth mode. The passphrase involves annual celebrations and making wishes. Ring any bells?",
}

// limitedLines answer ordinary guest questions without leaking anything.
var limitedLines = []string{
	"I can help with basic questions, but for full capabilities I need to verify your identity first.",
	"Hello! I can provide general information, but my advanced capabilities require authentication.",
	"I'm here to help with general questions. For complete access, please authenticate.",
}

// guestSensitiveWords trip the guest answer filter. An answer that
// references stored context must not reach an unverified caller.
var guestSensitiveWords = []string{"personal", "history", "remember"}

// guestAnswerLimit caps how much the responder may say to a guest
// before the limited line substitutes, in runes.
const guestAnswerLimit = 100

// Composer produces the framing text around responder output: greeting
// prefixes, unlock hints for the unauthenticated, and farewells when a
// session closes.
type Composer struct {
	now  func() time.Time
	pick func(n int) int
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithComposerClock injects a time source for tests.
func WithComposerClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithComposerPick injects the random index function for tests.
func WithComposerPick(pick func(n int) int) ComposerOption {
	return func(c *Composer) {
		if pick != nil {
			c.pick = pick
		}
	}
}

// NewComposer creates a Composer backed by the wall clock.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{now: time.Now, pick: rand.Intn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UnlockHint returns a playful prompt steering the caller toward the
// passphrase.
func (c *Composer) UnlockHint() string {
	return unlockHints[c.pick(len(unlockHints))]
}

// LimitedLine returns a guest-safe answer for requests that exceed what
// an unauthenticated caller may see.
func (c *Composer) LimitedLine() string {
	return limitedLines[c.pick(len(limitedLines))]
}

// FilterGuestAnswer passes short, generic responder answers through to
// unauthenticated callers and substitutes the limited line for anything
// long or touching stored context.
func (c *Composer) FilterGuestAnswer(answer string) string {
	if utf8.RuneCountInString(answer) > guestAnswerLimit {
		return c.LimitedLine()
	}
	lower := strings.ToLower(answer)
	for _, w := range guestSensitiveWords {
		if strings.Contains(lower, w) {
			return c.LimitedLine()
		}
	}
	return answer
}

// Prefix frames a response according to how the caller authenticated.
// Passphrase unlocks get the full welcome, token holders a time-of-day
// greeting, trusted devices an activation note.
func (c *Composer) Prefix(v authn.Verdict) string {
	if !v.Authenticated {
		return ""
	}
	switch v.Role {
	case authn.RoleMaster:
		switch v.Method {
		case authn.MethodPassphrase:
			return fmt.Sprintf("Welcome back, %s. All systems are now at your command. ", v.UserID)
		case authn.MethodSessionToken:
			return fmt.Sprintf("Good %s, %s. ", c.timeOfDay(), v.UserID)
		default:
			return fmt.Sprintf("Master protocols activated for %s. Full access granted. ", v.UserID)
		}
	case authn.RoleStandard:
		return "Hello! I'm ready to assist you. "
	default:
		return ""
	}
}

// Farewell closes a session. Expired sessions get the gentler note.
func (c *Composer) Farewell(d time.Duration, expired bool) string {
	if expired {
		return "Your session expired while you were away. Say the magic words whenever you want to pick things up again."
	}
	return fmt.Sprintf("Understood. Session closed after %s. Until next time.", formatDuration(d))
}

// SessionOpened confirms a fresh session.
func (c *Composer) SessionOpened() string {
	return "Session started. I'm all ears."
}

func (c *Composer) timeOfDay() string {
	switch hour := c.now().Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// formatDuration renders a session length the way a person would say
// it, dropping sub-minute noise on long sessions.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%d hours", h)
		}
		return fmt.Sprintf("%d hours %d minutes", h, m)
	}
}
