package post

import (
	"net/http"

	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// LikeHandler handles like/dislike requests
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{
		service: service,
	}
}

// HandleLike handles PUT /posts/{id}/like with body {"like": bool}.
// Repeating the same reaction removes it, the opposite one flips it.
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	var body likeBody
	if err := decodeBody(w, r, &body); err != nil {
		handleServiceError(w, err)
		return
	}
	if err := body.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	err := h.service.LikeOrDislikePost(r.Context(), posts.LikeOrDislikePostInput{
		PostID: chi.URLParam(r, "id"),
		Like:   *body.Like,
		Token:  middleware.GetCredential(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
