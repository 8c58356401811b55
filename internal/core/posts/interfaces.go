package posts

import (
	"context"

	"github.com/carolcampos22/chatterbox/internal/auth"
)

// Service defines the business logic interface for posts
// Every call carries the raw credential and verifies it before touching the store
type Service interface {
	// CreatePost stores a new post with zeroed counters owned by the caller
	CreatePost(ctx context.Context, input CreatePostInput) error

	// GetPosts lists every post with its creator name, in store order
	GetPosts(ctx context.Context, input GetPostsInput) ([]PostView, error)

	// EditPost replaces title and content. Only the creator may edit.
	EditPost(ctx context.Context, input EditPostInput) error

	// DeletePost removes a post. Allowed for the creator or any admin.
	DeletePost(ctx context.Context, input DeletePostInput) error

	// LikeOrDislikePost adds, flips or toggles off the caller's reaction
	// Flow: Verify -> Lock post -> Read reaction -> Reconcile -> Write reaction -> Write counters
	LikeOrDislikePost(ctx context.Context, input LikeOrDislikePostInput) error
}

// Repository defines the data access interface for posts and reactions
type Repository interface {
	InsertPost(ctx context.Context, post *PostRecord) error
	UpdatePost(ctx context.Context, post *PostRecord) error
	DeletePostByID(ctx context.Context, id string) error

	// FindPostByID returns ErrNotFound when the post does not exist
	FindPostByID(ctx context.Context, id string) (*PostRecord, error)

	// GetPostsWithCreatorName lists posts in insertion order
	GetPostsWithCreatorName(ctx context.Context) ([]*PostWithCreatorName, error)

	// FindPostWithCreatorNameByID returns ErrNotFound when the post does not exist
	// Inside InTx the row stays locked until the transaction ends
	FindPostWithCreatorNameByID(ctx context.Context, id string) (*PostWithCreatorName, error)

	// FindReaction returns ReactionNone when the user has not reacted
	FindReaction(ctx context.Context, userID, postID string) (ReactionState, error)
	InsertReaction(ctx context.Context, reaction *Reaction) error
	UpdateReaction(ctx context.Context, reaction *Reaction) error
	RemoveReaction(ctx context.Context, reaction *Reaction) error

	// EnsureUser creates the users row for a verified caller that has none.
	// An existing row is left untouched.
	EnsureUser(ctx context.Context, payload auth.TokenPayload) error

	// InTx runs fn against a repository bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(repo Repository) error) error
}

// IdentityVerifier decodes a credential into the caller's identity
type IdentityVerifier interface {
	GetPayload(token string) (*auth.TokenPayload, error)
}

// IDGenerator produces unique post identifiers
type IDGenerator interface {
	Generate() string
}
