package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carolcampos22/chatterbox/internal/auth"
	"github.com/carolcampos22/chatterbox/internal/core/posts"
)

// querier is the subset of *sql.DB and *sql.Tx the repository needs
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type postgresPostRepo struct {
	db   *sql.DB
	q    querier
	inTx bool
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db, q: db}
}

const selectPostWithCreatorName = `
	SELECT
		p.id, p.creator_id, p.title, p.content,
		p.likes, p.dislikes, p.comments,
		p.created_at, p.updated_at,
		u.name
	FROM posts p
	JOIN users u ON u.id = p.creator_id`

// InsertPost inserts a new post
func (r *postgresPostRepo) InsertPost(ctx context.Context, post *posts.PostRecord) error {
	query := `
		INSERT INTO posts (
			id, creator_id, title, content,
			likes, dislikes, comments,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9
		)`

	_, err := r.q.ExecContext(ctx, query,
		post.ID, post.CreatorID, post.Title, post.Content,
		post.Likes, post.Dislikes, post.Comments,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "posts_creator_id_fkey") {
			return fmt.Errorf("creator %s is not a registered user: %w", post.CreatorID, err)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// UpdatePost overwrites the mutable columns of a post
func (r *postgresPostRepo) UpdatePost(ctx context.Context, post *posts.PostRecord) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3,
			likes = $4, dislikes = $5, comments = $6,
			updated_at = $7
		WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query,
		post.ID, post.Title, post.Content,
		post.Likes, post.Dislikes, post.Comments,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return expectOneRow(result, post.ID)
}

// DeletePostByID hard-deletes a post; its reactions go with it (ON DELETE CASCADE)
func (r *postgresPostRepo) DeletePostByID(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectOneRow(result, id)
}

// FindPostByID retrieves a post row by id
func (r *postgresPostRepo) FindPostByID(ctx context.Context, id string) (*posts.PostRecord, error) {
	query := `
		SELECT
			id, creator_id, title, content,
			likes, dislikes, comments,
			created_at, updated_at
		FROM posts
		WHERE id = $1`

	var post posts.PostRecord
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.CreatorID, &post.Title, &post.Content,
		&post.Likes, &post.Dislikes, &post.Comments,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return &post, nil
}

// GetPostsWithCreatorName lists every post joined with its creator's name, oldest first
func (r *postgresPostRepo) GetPostsWithCreatorName(ctx context.Context) ([]*posts.PostWithCreatorName, error) {
	query := selectPostWithCreatorName + `
	ORDER BY p.created_at ASC, p.id ASC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*posts.PostWithCreatorName{}
	for rows.Next() {
		post, err := scanPostWithCreatorName(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return result, nil
}

// FindPostWithCreatorNameByID retrieves one post with its creator's name.
// Inside a transaction the post row is locked until commit or rollback.
func (r *postgresPostRepo) FindPostWithCreatorNameByID(ctx context.Context, id string) (*posts.PostWithCreatorName, error) {
	query := selectPostWithCreatorName + `
	WHERE p.id = $1`
	if r.inTx {
		query += `
	FOR UPDATE OF p`
	}

	post, err := scanPostWithCreatorName(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindReaction returns the user's current reaction state on a post
func (r *postgresPostRepo) FindReaction(ctx context.Context, userID, postID string) (posts.ReactionState, error) {
	query := `SELECT is_like FROM likes_dislikes WHERE user_id = $1 AND post_id = $2`

	var isLike bool
	err := r.q.QueryRowContext(ctx, query, userID, postID).Scan(&isLike)
	if err == sql.ErrNoRows {
		return posts.ReactionNone, nil
	}
	if err != nil {
		return posts.ReactionNone, fmt.Errorf("failed to get reaction: %w", err)
	}
	if isLike {
		return posts.ReactionLiked, nil
	}
	return posts.ReactionDisliked, nil
}

// InsertReaction stores a new reaction; a second reaction for the same pair violates the primary key
func (r *postgresPostRepo) InsertReaction(ctx context.Context, reaction *posts.Reaction) error {
	query := `INSERT INTO likes_dislikes (user_id, post_id, is_like) VALUES ($1, $2, $3)`

	if _, err := r.q.ExecContext(ctx, query, reaction.UserID, reaction.PostID, reaction.Like); err != nil {
		return fmt.Errorf("failed to insert reaction: %w", err)
	}
	return nil
}

// UpdateReaction changes the polarity of an existing reaction
func (r *postgresPostRepo) UpdateReaction(ctx context.Context, reaction *posts.Reaction) error {
	query := `UPDATE likes_dislikes SET is_like = $3 WHERE user_id = $1 AND post_id = $2`

	result, err := r.q.ExecContext(ctx, query, reaction.UserID, reaction.PostID, reaction.Like)
	if err != nil {
		return fmt.Errorf("failed to update reaction: %w", err)
	}
	return expectOneRow(result, reaction.UserID+"/"+reaction.PostID)
}

// RemoveReaction deletes a reaction
func (r *postgresPostRepo) RemoveReaction(ctx context.Context, reaction *posts.Reaction) error {
	query := `DELETE FROM likes_dislikes WHERE user_id = $1 AND post_id = $2`

	result, err := r.q.ExecContext(ctx, query, reaction.UserID, reaction.PostID)
	if err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return expectOneRow(result, reaction.UserID+"/"+reaction.PostID)
}

// EnsureUser inserts the caller from its verified token when no users row exists.
// Name and role of an existing row are kept; registration owns those.
func (r *postgresPostRepo) EnsureUser(ctx context.Context, payload auth.TokenPayload) error {
	query := `
		INSERT INTO users (id, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.q.ExecContext(ctx, query, payload.ID, payload.Name, string(payload.Role)); err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", payload.ID, err)
	}
	return nil
}

// InTx runs fn inside a transaction. Nested calls reuse the outer transaction.
func (r *postgresPostRepo) InTx(ctx context.Context, fn func(repo posts.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &postgresPostRepo{db: r.db, q: tx, inTx: true}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostWithCreatorName(row rowScanner) (*posts.PostWithCreatorName, error) {
	var post posts.PostWithCreatorName
	err := row.Scan(
		&post.ID, &post.CreatorID, &post.Title, &post.Content,
		&post.Likes, &post.Dislikes, &post.Comments,
		&post.CreatedAt, &post.UpdatedAt,
		&post.CreatorName,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &post, nil
}

func expectOneRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, posts.ErrNotFound)
	}
	return nil
}
