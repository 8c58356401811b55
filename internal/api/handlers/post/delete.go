package post

import (
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /posts/{id}.
// Creators may delete their own posts, admins may delete any.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeletePost(r.Context(), posts.DeletePostInput{
		IDToDelete: chi.URLParam(r, "id"),
		Token:      middleware.GetCredential(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
