package session

import (
	"log"
	"net/http"
	"strings"

	"github.com/carolcampos22/chatterbox/internal/api/handlers"
	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/auth"
	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

// Handler stores a verified token in the session cookie for browser clients
type Handler struct {
	verifier    posts.IdentityVerifier
	credentials *middleware.CredentialMiddleware
}

// NewHandler creates a new session handler
func NewHandler(verifier posts.IdentityVerifier, credentials *middleware.CredentialMiddleware) *Handler {
	return &Handler{
		verifier:    verifier,
		credentials: credentials,
	}
}

// HandleLogin handles POST /session with an Authorization header.
// The token is verified once here so a bad token never lands in a cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	token := bareToken(strings.TrimSpace(r.Header.Get("Authorization")))
	if token == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	payload, err := h.verifier.GetPayload(token)
	if err != nil || payload == nil {
		log.Printf("[AUTH_FAILURE] type=session_login ip=%s error=%v", r.RemoteAddr, err)
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Invalid or missing credential")
		return
	}

	if err := h.credentials.SaveCredential(w, r, token); err != nil {
		log.Printf("[AUTH] Failed to save session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, sessionView{ID: payload.ID, Name: payload.Name, Role: payload.Role})
}

// HandleLogout handles DELETE /session
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.credentials.ClearCredential(w, r); err != nil {
		log.Printf("[AUTH] Failed to clear session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionView struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Role auth.Role `json:"role"`
}

func bareToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
