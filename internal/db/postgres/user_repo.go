package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carolcampos22/chatterbox/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Upsert inserts a user or refreshes name, email and role of an existing one
func (r *postgresUserRepo) Upsert(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, name, email, role)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, role = EXCLUDED.role
		RETURNING id, name, COALESCE(email, ''), role, created_at`

	var out users.User
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, string(user.Role)).
		Scan(&out.ID, &out.Name, &out.Email, &out.Role, &out.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "users_email_key") {
			return nil, users.ErrEmailAlreadyTaken
		}
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &out, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT id, name, COALESCE(email, ''), role, created_at FROM users WHERE id = $1`

	var user users.User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}
