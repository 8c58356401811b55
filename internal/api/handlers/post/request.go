package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

const (
	maxTitleLength   = 280
	maxContentLength = 10000
	maxBodyBytes     = 64 * 1024
)

// postBody is the JSON body of create and edit requests
type postBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// likeBody is the JSON body of the like endpoint. Like is a pointer so a missing field is detectable.
type likeBody struct {
	Like *bool `json:"like"`
}

// decodeBody reads a size-limited JSON body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return posts.NewValidationError("body", "request body too large")
		}
		return posts.NewValidationError("body", "invalid request body")
	}
	return nil
}

func (b postBody) validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return posts.NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(b.Title) > maxTitleLength {
		return posts.NewValidationError("title", "title is too long")
	}
	if strings.TrimSpace(b.Content) == "" {
		return posts.NewValidationError("content", "content is required")
	}
	if utf8.RuneCountInString(b.Content) > maxContentLength {
		return posts.NewValidationError("content", "content is too long")
	}
	return nil
}

func (b likeBody) validate() error {
	if b.Like == nil {
		return posts.NewValidationError("like", "like must be a boolean")
	}
	return nil
}
