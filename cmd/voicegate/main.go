package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/voicegate/modules/assistant"
	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/authn"
	"github.com/dmitrymomot/voicegate/pkg/config"
	"github.com/dmitrymomot/voicegate/pkg/device"
	"github.com/dmitrymomot/voicegate/pkg/extract"
	"github.com/dmitrymomot/voicegate/pkg/httpserver"
	"github.com/dmitrymomot/voicegate/pkg/jwt"
	"github.com/dmitrymomot/voicegate/pkg/logger"
	"github.com/dmitrymomot/voicegate/pkg/ratelimit"
	"github.com/dmitrymomot/voicegate/pkg/session"
	"github.com/dmitrymomot/voicegate/pkg/voice"
)

type appConfig struct {
	Log       logger.Config
	HTTP      httpserver.Config
	RateLimit ratelimit.Config

	MasterUserID       string   `env:"MASTER_USER_ID" envDefault:"buddy"`
	MasterPassphrase   string   `env:"MASTER_PASSPHRASE" envDefault:"happy birthday"`
	TokenSecret        string   `env:"SESSION_TOKEN_SECRET"`
	TokenTTLHours      int      `env:"SESSION_TOKEN_TTL_HOURS" envDefault:"24"`
	IdleTimeoutMinutes int      `env:"SESSION_IDLE_TIMEOUT_MINUTES" envDefault:"30"`
	StartPhrases       []string `env:"SESSION_START_PHRASES" envDefault:"happy birthday"`
	EndPhrases         []string `env:"SESSION_END_PHRASES" envDefault:"over and out,goodbye buddy"`
	TrustedDevices     []string `env:"TRUSTED_DEVICE_PATTERNS" envDefault:"iPhone*,*iOS*,*CFNetwork*"`
	PolicyFile         string   `env:"POLICY_FILE"`
	PersonaName        string   `env:"PERSONA_NAME" envDefault:"Buddy"`
}

// TokenTTL converts the hour knob into the codec's duration.
func (c appConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// IdleTimeout converts the minute knob into the session manager's
// duration. Zero or negative disables idle expiry.
func (c appConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(logger.Component("voicegate")))

	// The optional policy file overrides identity settings from the
	// environment.
	grants := access.DefaultGrants()
	if cfg.PolicyFile != "" {
		policy, err := assistant.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			log.Error("failed to load policy file", logger.Error(err))
			os.Exit(1)
		}
		if policy.MasterUserID != "" {
			cfg.MasterUserID = policy.MasterUserID
		}
		if policy.Passphrase != "" {
			cfg.MasterPassphrase = policy.Passphrase
		}
		if len(policy.StartPhrases) > 0 {
			cfg.StartPhrases = policy.StartPhrases
		}
		if len(policy.EndPhrases) > 0 {
			cfg.EndPhrases = policy.EndPhrases
		}
		if len(policy.TrustedDevices) > 0 {
			cfg.TrustedDevices = policy.TrustedDevices
		}
		if g := policy.AccessGrants(); g != nil {
			grants = g
		}
		log.Info("policy file applied", slog.String("path", cfg.PolicyFile))
	}

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		// Tokens won't survive a restart without a configured secret.
		secret = randomSecret()
		log.Warn("SESSION_TOKEN_SECRET not set, generated an ephemeral signing key")
	}

	codec, err := jwt.NewCodec(secret, cfg.TokenTTL())
	if err != nil {
		log.Error("failed to build token codec", logger.Error(err))
		os.Exit(1)
	}

	matcher, err := device.NewMatcher(cfg.TrustedDevices)
	if err != nil {
		log.Error("invalid trusted device patterns", logger.Error(err))
		os.Exit(1)
	}

	gate, err := access.NewController(grants)
	if err != nil {
		log.Error("invalid access grants", logger.Error(err))
		os.Exit(1)
	}

	limiter, err := ratelimit.New(cfg.RateLimit)
	if err != nil {
		log.Error("invalid rate limit configuration", logger.Error(err))
		os.Exit(1)
	}
	defer limiter.Close()

	sessions := session.NewManager(
		session.WithStartPhrases(cfg.StartPhrases...),
		session.WithEndPhrases(cfg.EndPhrases...),
		session.WithIdleTimeout(cfg.IdleTimeout()),
	)

	svc := assistant.NewService(
		extract.New(),
		authn.NewDefault(codec, matcher, cfg.MasterPassphrase, cfg.MasterUserID),
		gate,
		sessions,
		assistant.WithLogger(log),
		assistant.WithResponder(assistant.NewPersonaResponder(cfg.PersonaName)),
		assistant.WithVoiceProcessor(voice.NewProcessor()),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(ratelimit.Middleware(limiter, ratelimit.ByClientIP))
	r.Mount("/", assistant.Router(svc))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return []byte(hex.EncodeToString(buf))
}
