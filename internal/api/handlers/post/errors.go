package post

import (
	"errors"
	"log"
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/handlers"
	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

// handleServiceError maps post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrUnauthorized):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Invalid or missing credential")

	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, posts.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "You are not allowed to modify this post")

	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("[POSTS] Unexpected error in post handler: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
