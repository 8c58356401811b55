package routes

import (
	"github.com/carolcampos22/chatterbox/internal/api/handlers/post"
	"github.com/carolcampos22/chatterbox/internal/api/middleware"
	"github.com/carolcampos22/chatterbox/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the /posts endpoints; every one needs a credential
func RegisterPostRoutes(r chi.Router, service posts.Service, credentials *middleware.CredentialMiddleware) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	editHandler := post.NewEditHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)

	r.Route("/posts", func(r chi.Router) {
		r.Use(credentials.RequireCredential)

		r.Post("/", createHandler.HandleCreate)
		r.Get("/", listHandler.HandleList)
		r.Put("/{id}", editHandler.HandleEdit)
		r.Delete("/{id}", deleteHandler.HandleDelete)
		r.Put("/{id}/like", likeHandler.HandleLike)
	})
}
