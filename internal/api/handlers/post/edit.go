package post

import (
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// EditHandler handles post edit requests
type EditHandler struct {
	service posts.Service
}

// NewEditHandler creates a new edit handler
func NewEditHandler(service posts.Service) *EditHandler {
	return &EditHandler{
		service: service,
	}
}

// HandleEdit handles PUT /posts/{id}
func (h *EditHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var body postBody
	if err := decodeBody(w, r, &body); err != nil {
		handleServiceError(w, err)
		return
	}
	if err := body.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	err := h.service.EditPost(r.Context(), posts.EditPostInput{
		IDToEdit: chi.URLParam(r, "id"),
		Title:    body.Title,
		Content:  body.Content,
		Token:    middleware.GetCredential(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
