package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/authn"
	"github.com/dmitrymomot/voicegate/pkg/extract"
	"github.com/dmitrymomot/voicegate/pkg/logger"
	"github.com/dmitrymomot/voicegate/pkg/session"
	"github.com/dmitrymomot/voicegate/pkg/voice"
)

// Request is one inbound message, transport-agnostic.
type Request struct {
	Headers map[string]string
	Message string
	UserID  string

	// Voice marks requests arriving from a speech client. Input gets
	// the transcript cleaner, output the TTS sanitizer.
	Voice bool
}

// Reply is the service's answer.
type Reply struct {
	Response      string
	AuthStatus    string
	Role          authn.Role
	SessionActive bool
	SessionEvent  session.Event

	// Token is set when this request authenticated by passphrase and a
	// fresh session token was issued for the caller to store.
	Token string
}

// Service orchestrates the full request path. It owns no state of its
// own; everything mutable lives in the session manager and audit log.
type Service struct {
	extractor *extract.Extractor
	auth      *authn.Authenticator
	gate      *access.Controller
	sessions  *session.Manager
	voice     *voice.Processor
	composer  *Composer
	responder Responder
	audit     *AuditLog
	log       *slog.Logger
}

// ServiceOption configures optional Service collaborators.
type ServiceOption func(*Service)

// WithResponder swaps the answer source. Defaults to the built-in
// persona.
func WithResponder(r Responder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.responder = r
		}
	}
}

// WithLogger sets the service logger. Defaults to discard.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithComposer swaps the response framing.
func WithComposer(c *Composer) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.composer = c
		}
	}
}

// WithVoiceProcessor swaps the speech pipelines.
func WithVoiceProcessor(p *voice.Processor) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.voice = p
		}
	}
}

// NewService assembles the pipeline around the required collaborators.
func NewService(
	extractor *extract.Extractor,
	auth *authn.Authenticator,
	gate *access.Controller,
	sessions *session.Manager,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		extractor: extractor,
		auth:      auth,
		gate:      gate,
		sessions:  sessions,
		voice:     voice.NewProcessor(),
		composer:  NewComposer(),
		responder: NewPersonaResponder("Buddy"),
		audit:     NewAuditLog(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Audit exposes the attempt log for the admin surface.
func (s *Service) Audit() *AuditLog { return s.audit }

// Sessions exposes the session manager for the admin surface.
func (s *Service) Sessions() *session.Manager { return s.sessions }

// Handle runs one message through the pipeline. Malformed input is the
// only error path surfaced to transports; every authentication failure
// degrades to a guest verdict instead.
func (s *Service) Handle(ctx context.Context, req Request) (Reply, error) {
	bundle, err := s.extractor.Extract(req.Headers, req.Message, req.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "rejected malformed request", logger.Error(err))
		return Reply{}, err
	}

	message := bundle.Message
	if req.Voice {
		message = s.voice.CleanInput(message)
	}

	verdict := s.auth.Authenticate(bundle)
	s.audit.Record(AuditEntry{
		Time:          time.Now(),
		UserID:        verdict.UserID,
		Role:          verdict.Role,
		Method:        verdict.Method,
		Authenticated: verdict.Authenticated,
		DeviceID:      verdict.DeviceID,
	})
	s.log.InfoContext(ctx, "request authenticated",
		logger.UserID(verdict.UserID),
		logger.Role(verdict.Role),
		logger.Method(verdict.Method),
		slog.Bool("authenticated", verdict.Authenticated),
	)

	res, err := s.sessions.OnRequest(ctx, verdict.UserID, verdict.Authenticated, string(verdict.Role), message)
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: session lifecycle: %w", err)
	}
	if res.Event == session.EventEnded {
		s.log.InfoContext(ctx, "session ended",
			logger.UserID(verdict.UserID),
			logger.Duration(res.Duration),
			slog.Bool("expired", res.Expired),
		)
	}

	reply := Reply{
		AuthStatus:    authStatus(verdict),
		Role:          verdict.Role,
		SessionActive: res.Event == session.EventStarted || res.Event == session.EventContinued,
		SessionEvent:  res.Event,
		Token:         verdict.IssuedToken,
	}

	reply.Response, err = s.respond(ctx, verdict, res, message)
	if err != nil {
		return Reply{}, err
	}

	if req.Voice {
		reply.Response = s.voice.ForSpeech(reply.Response)
	}
	return reply, nil
}

// respond picks the answer for the request: admin command, lifecycle
// framing, gated hint, or responder output with its greeting prefix.
func (s *Service) respond(ctx context.Context, verdict authn.Verdict, res session.Result, message string) (string, error) {
	if isAdminCommand(message) {
		return s.adminResponse(verdict, message), nil
	}

	switch res.Event {
	case session.EventStarted:
		return s.composer.Prefix(verdict) + s.composer.SessionOpened(), nil
	case session.EventEnded:
		return s.composer.Farewell(res.Duration, res.Expired), nil
	}

	if !s.gate.Check(verdict, access.CapabilityGeneralChat) {
		return s.composer.UnlockHint(), nil
	}

	answer, err := s.responder.Respond(ctx, Prompt{
		Message:             message,
		UserID:              verdict.UserID,
		Role:                verdict.Role,
		SessionMessageCount: res.Session.MessageCount,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: responder: %w", err)
	}

	// Guests hold the general-chat capability, so the responder runs
	// for them too; only its answer is filtered.
	if !verdict.Authenticated {
		return s.composer.FilterGuestAnswer(answer), nil
	}
	return s.composer.Prefix(verdict) + answer, nil
}

// Authorize resolves a verdict from headers alone and checks it against
// the required capability. Used by the admin endpoints, where there is
// no message to route. The attempt is audited like any other.
func (s *Service) Authorize(ctx context.Context, headers map[string]string, capability access.Capability) (authn.Verdict, error) {
	bundle, err := s.extractor.Extract(headers, "", "")
	if err != nil {
		return authn.Verdict{}, err
	}

	verdict := s.auth.Authenticate(bundle)
	s.audit.Record(AuditEntry{
		Time:          time.Now(),
		UserID:        verdict.UserID,
		Role:          verdict.Role,
		Method:        verdict.Method,
		Authenticated: verdict.Authenticated,
		DeviceID:      verdict.DeviceID,
		Path:          "admin",
	})

	if err := s.gate.Can(verdict.Role, capability); err != nil {
		s.log.WarnContext(ctx, "admin access denied",
			logger.UserID(verdict.UserID),
			logger.Role(verdict.Role),
		)
		return verdict, err
	}
	return verdict, nil
}

// adminCommandWords trigger the admin flow when found in a message.
var adminCommandWords = []string{"admin", "status", "logs", "security", "whitelist", "users", "reset"}

func isAdminCommand(message string) bool {
	m := strings.ToLower(message)
	for _, w := range adminCommandWords {
		if strings.Contains(m, w) {
			return true
		}
	}
	return false
}

// adminResponse serves in-chat admin commands. Non-masters get the
// unlock hint rather than a hard denial.
func (s *Service) adminResponse(verdict authn.Verdict, message string) string {
	if !s.gate.Check(verdict, access.CapabilityAdminStatus) {
		return s.composer.UnlockHint()
	}

	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "status"):
		return s.statusText()
	case strings.Contains(m, "logs") || strings.Contains(m, "security"):
		return s.logsText()
	case strings.Contains(m, "users"):
		return s.usersText()
	case strings.Contains(m, "reset"):
		cleared := s.audit.Reset()
		return fmt.Sprintf("Reset complete. Cleared %d authentication log entries. Device rules and access policy kept.", cleared)
	default:
		return "Admin commands: status, logs, users, reset."
	}
}

func (s *Service) statusText() string {
	stats := s.audit.Stats()
	active := len(s.sessions.Active(context.Background()))
	last := "never"
	if !stats.LastMasterAuth.IsZero() {
		last = stats.LastMasterAuth.Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"Security status: %d attempts, %d successful, %d failed, %d master authentications. Last master auth: %s. Active sessions: %d.",
		stats.Total, stats.Succeeded, stats.Failed, stats.MasterAuths, last, active,
	)
}

func (s *Service) logsText() string {
	entries := s.audit.Recent(10)
	if len(entries) == 0 {
		return "No recent authentication logs."
	}
	var b strings.Builder
	b.WriteString("Recent authentication attempts, newest first: ")
	for i, e := range entries {
		if i > 0 {
			b.WriteString("; ")
		}
		outcome := "denied"
		if e.Authenticated {
			outcome = "ok"
		}
		fmt.Fprintf(&b, "%s %s via %s (%s) %s",
			e.Time.Format("15:04:05"), e.UserID, e.Method, e.Role, outcome)
	}
	b.WriteString(".")
	return b.String()
}

func (s *Service) usersText() string {
	seen := make(map[string]bool)
	var users []string
	for _, e := range s.audit.Recent(100) {
		if !e.Authenticated {
			continue
		}
		key := fmt.Sprintf("%s (%s)", e.UserID, e.Role)
		if !seen[key] {
			seen[key] = true
			users = append(users, key)
		}
	}
	if len(users) == 0 {
		return "No authenticated users in recent logs."
	}
	return "Recent users: " + strings.Join(users, ", ") + "."
}

func authStatus(v authn.Verdict) string {
	if v.Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}
