package post

import (
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /posts
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body postBody
	if err := decodeBody(w, r, &body); err != nil {
		handleServiceError(w, err)
		return
	}
	if err := body.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	err := h.service.CreatePost(r.Context(), posts.CreatePostInput{
		Title:   body.Title,
		Content: body.Content,
		Token:   middleware.GetCredential(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
