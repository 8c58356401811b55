package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// recordingService remembers the last token it saw
type recordingService struct {
	lastToken string
}

func (s *recordingService) CreatePost(ctx context.Context, input posts.CreatePostInput) error {
	s.lastToken = input.Token
	return nil
}

func (s *recordingService) GetPosts(ctx context.Context, input posts.GetPostsInput) ([]posts.PostView, error) {
	s.lastToken = input.Token
	return []posts.PostView{}, nil
}

func (s *recordingService) EditPost(ctx context.Context, input posts.EditPostInput) error {
	s.lastToken = input.Token
	return nil
}

func (s *recordingService) DeletePost(ctx context.Context, input posts.DeletePostInput) error {
	s.lastToken = input.Token
	return nil
}

func (s *recordingService) LikeOrDislikePost(ctx context.Context, input posts.LikeOrDislikePostInput) error {
	s.lastToken = input.Token
	return nil
}

func TestPostRoutes(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
	}{
		{http.MethodPost, "/posts", `{"title":"A","content":"B"}`, http.StatusCreated},
		{http.MethodGet, "/posts", "", http.StatusOK},
		{http.MethodPut, "/posts/p1", `{"title":"A","content":"B"}`, http.StatusOK},
		{http.MethodDelete, "/posts/p1", "", http.StatusOK},
		{http.MethodPut, "/posts/p1/like", `{"like":true}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			svc := &recordingService{}
			r := chi.NewRouter()
			RegisterPostRoutes(r, svc, middleware.NewCredentialMiddleware(nil))

			anon := httptest.NewRecorder()
			r.ServeHTTP(anon, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusUnauthorized, anon.Code)
			assert.Empty(t, svc.lastToken)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "tok", svc.lastToken)
		})
	}
}
