package routes

import (
	"github.com/carolcampos22/chatterbox/internal/api/handlers/session"
	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterSessionRoutes registers cookie login and logout
func RegisterSessionRoutes(r chi.Router, verifier posts.IdentityVerifier, credentials *middleware.CredentialMiddleware) {
	h := session.NewHandler(verifier, credentials)

	r.Post("/session", h.HandleLogin)
	r.Delete("/session", h.HandleLogout)
}
