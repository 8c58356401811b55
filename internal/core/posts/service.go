package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/carolcampos22/chatterbox/internal/auth"
)

type postService struct {
	repo     Repository
	verifier IdentityVerifier
	ids      IDGenerator
	now      func() time.Time
}

// NewPostService creates a new post service
func NewPostService(repo Repository, verifier IdentityVerifier, ids IDGenerator) Service {
	return &postService{
		repo:     repo,
		verifier: verifier,
		ids:      ids,
		now:      time.Now,
	}
}

// authenticate turns any verification failure into ErrUnauthorized
func (s *postService) authenticate(token string) (*auth.TokenPayload, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	payload, err := s.verifier.GetPayload(token)
	if err != nil || payload == nil {
		return nil, ErrUnauthorized
	}
	return payload, nil
}

// CreatePost stores a new post owned by the caller
func (s *postService) CreatePost(ctx context.Context, input CreatePostInput) error {
	payload, err := s.authenticate(input.Token)
	if err != nil {
		return err
	}

	post := NewPost(
		s.ids.Generate(),
		input.Title,
		input.Content,
		s.now().UTC(),
		payload.ID,
		payload.Name,
	)

	return s.repo.InTx(ctx, func(repo Repository) error {
		if err := repo.EnsureUser(ctx, *payload); err != nil {
			return fmt.Errorf("failed to register creator: %w", err)
		}
		if err := repo.InsertPost(ctx, post.ToRecord()); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return nil
	})
}

// GetPosts lists every post with its creator name
func (s *postService) GetPosts(ctx context.Context, input GetPostsInput) ([]PostView, error) {
	if _, err := s.authenticate(input.Token); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetPostsWithCreatorName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	views := make([]PostView, 0, len(rows))
	for _, row := range rows {
		views = append(views, PostFromRecord(&row.PostRecord, row.CreatorName).ToView())
	}
	return views, nil
}

// EditPost replaces title and content of the caller's own post.
// Counters and timestamps are left as stored. The row is locked so a
// concurrent reaction cannot have its counter change overwritten.
func (s *postService) EditPost(ctx context.Context, input EditPostInput) error {
	payload, err := s.authenticate(input.Token)
	if err != nil {
		return err
	}

	return s.repo.InTx(ctx, func(repo Repository) error {
		row, err := repo.FindPostWithCreatorNameByID(ctx, input.IDToEdit)
		if err != nil {
			if IsNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to find post: %w", err)
		}

		if payload.ID != row.CreatorID {
			return ErrForbidden
		}

		post := PostFromRecord(&row.PostRecord, row.CreatorName)
		post.SetTitle(input.Title)
		post.SetContent(input.Content)

		if err := repo.UpdatePost(ctx, post.ToRecord()); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		return nil
	})
}

// DeletePost removes a post owned by the caller, or any post when the caller is an admin
func (s *postService) DeletePost(ctx context.Context, input DeletePostInput) error {
	payload, err := s.authenticate(input.Token)
	if err != nil {
		return err
	}

	rec, err := s.repo.FindPostByID(ctx, input.IDToDelete)
	if err != nil {
		if IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	if payload.Role != auth.RoleAdmin && payload.ID != rec.CreatorID {
		return ErrForbidden
	}

	if err := s.repo.DeletePostByID(ctx, input.IDToDelete); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// LikeOrDislikePost reconciles the caller's reaction with the requested polarity.
// The reaction write and the counter write share one transaction, and the post
// row is locked for its duration, so concurrent requests on a post serialize.
func (s *postService) LikeOrDislikePost(ctx context.Context, input LikeOrDislikePostInput) error {
	payload, err := s.authenticate(input.Token)
	if err != nil {
		return err
	}

	return s.repo.InTx(ctx, func(repo Repository) error {
		row, err := repo.FindPostWithCreatorNameByID(ctx, input.PostID)
		if err != nil {
			if IsNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to find post: %w", err)
		}

		current, err := repo.FindReaction(ctx, payload.ID, input.PostID)
		if err != nil {
			return fmt.Errorf("failed to find reaction: %w", err)
		}

		reaction := &Reaction{
			UserID: payload.ID,
			PostID: input.PostID,
			Like:   input.Like,
		}

		transition := Reconcile(current, input.Like)
		switch transition.Action {
		case ActionInsert:
			// first reaction of a caller who may only exist in the token
			if err = repo.EnsureUser(ctx, *payload); err != nil {
				return fmt.Errorf("failed to register reacting user: %w", err)
			}
			err = repo.InsertReaction(ctx, reaction)
		case ActionUpdate:
			err = repo.UpdateReaction(ctx, reaction)
		case ActionRemove:
			err = repo.RemoveReaction(ctx, reaction)
		}
		if err != nil {
			return fmt.Errorf("failed to %s reaction: %w", transition.Action, err)
		}

		post := PostFromRecord(&row.PostRecord, row.CreatorName)
		transition.ApplyTo(post)

		if err := repo.UpdatePost(ctx, post.ToRecord()); err != nil {
			return fmt.Errorf("failed to update post counters: %w", err)
		}
		return nil
	})
}
