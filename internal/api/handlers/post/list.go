package post

import (
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/handlers"
	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

// ListHandler handles post listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList handles GET /posts
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.GetPosts(r.Context(), posts.GetPostsInput{
		Token: middleware.GetCredential(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, views)
}
