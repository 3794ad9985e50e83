package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/extract"
	"github.com/dmitrymomot/voicegate/pkg/session"
)

// ChatRequest is the JSON body accepted by POST /chat and /siri-chat.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse is the JSON body returned by POST /chat.
type ChatResponse struct {
	Response      string        `json:"response"`
	AuthStatus    string        `json:"auth_status"`
	Role          string        `json:"role"`
	SessionActive bool          `json:"session_active"`
	SessionEvent  session.Event `json:"session_event"`
	Token         string        `json:"token,omitempty"`
}

// SpeakResponse is the minimal payload Siri shortcuts read aloud.
type SpeakResponse struct {
	Speak string `json:"speak"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router mounts the assistant's HTTP surface on a fresh chi router.
// Middleware (rate limiting, request logging) is applied by the caller
// so test setups can skip it.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Post("/chat", handleChat(svc))
	r.Post("/siri-chat", handleSiriChat(svc))

	r.Route("/admin", func(admin chi.Router) {
		admin.Get("/status", handleAdminStatus(svc))
		admin.Get("/logs", handleAdminLogs(svc))
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "agent": "voicegate"})
}

func handleChat(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		reply, err := svc.Handle(r.Context(), Request{
			Headers: flattenHeaders(r),
			Message: body.Message,
			UserID:  body.UserID,
		})
		if err != nil {
			writeHandleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ChatResponse{
			Response:      reply.Response,
			AuthStatus:    reply.AuthStatus,
			Role:          string(reply.Role),
			SessionActive: reply.SessionActive,
			SessionEvent:  reply.SessionEvent,
			Token:         reply.Token,
		})
	}
}

func handleSiriChat(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, SpeakResponse{Speak: "I couldn't understand that request."})
			return
		}

		reply, err := svc.Handle(r.Context(), Request{
			Headers: flattenHeaders(r),
			Message: body.Message,
			UserID:  body.UserID,
			Voice:   true,
		})
		if err != nil {
			if errors.Is(err, extract.ErrMalformedInput) {
				writeJSON(w, http.StatusBadRequest, SpeakResponse{Speak: "I couldn't understand that request."})
				return
			}
			writeJSON(w, http.StatusInternalServerError, SpeakResponse{Speak: "Something went wrong on my end. Please try again."})
			return
		}

		writeJSON(w, http.StatusOK, SpeakResponse{Speak: reply.Response})
	}
}

func handleAdminStatus(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Authorize(r.Context(), flattenHeaders(r), access.CapabilityAdminStatus); err != nil {
			writeAuthorizeError(w, err)
			return
		}

		stats := svc.Audit().Stats()
		active := svc.Sessions().Active(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"auth":            stats,
			"active_sessions": len(active),
			"idle_timeout":    svc.Sessions().IdleTimeout().String(),
		})
	}
}

func handleAdminLogs(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Authorize(r.Context(), flattenHeaders(r), access.CapabilityAdminLogs); err != nil {
			writeAuthorizeError(w, err)
			return
		}

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"logs": svc.Audit().Recent(limit)})
	}
}

func writeHandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, extract.ErrMalformedInput) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeAuthorizeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extract.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, access.ErrAccessDenied), errors.Is(err, access.ErrInvalidRole):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "master authentication required"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// flattenHeaders collapses the request headers to single values; the
// extractor works with a flat map.
func flattenHeaders(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
