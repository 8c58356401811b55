package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/carolcampos22/chatterbox/internal/auth"
	"github.com/carolcampos22/chatterbox/internal/core/users"
	"github.com/carolcampos22/chatterbox/internal/db/migrations"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and runs migrations.
// Tests are skipped when no test database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL tests")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, migrations.Up(db), "Failed to run migrations")

	t.Cleanup(func() {
		cleanupTestData(t, db)
		_ = db.Close()
	})
	cleanupTestData(t, db)

	return db
}

// cleanupTestData removes rows created by tests (ids are prefixed with "test-")
func cleanupTestData(t *testing.T, db *sql.DB) {
	_, err := db.Exec("DELETE FROM likes_dislikes WHERE user_id LIKE 'test-%'")
	require.NoError(t, err, "Failed to cleanup reactions")

	_, err = db.Exec("DELETE FROM posts WHERE creator_id LIKE 'test-%'")
	require.NoError(t, err, "Failed to cleanup posts")

	_, err = db.Exec("DELETE FROM users WHERE id LIKE 'test-%'")
	require.NoError(t, err, "Failed to cleanup users")
}

// createTestUser creates a user for foreign key constraints
func createTestUser(t *testing.T, db *sql.DB, id, name string) {
	_, err := NewUserRepository(db).Upsert(context.Background(), &users.User{
		ID:   id,
		Name: name,
		Role: auth.RoleNormal,
	})
	require.NoError(t, err, "Failed to create test user")
}
