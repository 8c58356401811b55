package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/carolcampos22/chatterbox/internal/core/posts"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo serves a fixed listing and counts how often the store is hit
type countingRepo struct {
	posts.Repository
	listing   []*posts.PostWithCreatorName
	listCalls int
	writeErr  error
}

func (c *countingRepo) GetPostsWithCreatorName(ctx context.Context) ([]*posts.PostWithCreatorName, error) {
	c.listCalls++
	return c.listing, nil
}

func (c *countingRepo) InsertPost(ctx context.Context, post *posts.PostRecord) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.listing = append(c.listing, &posts.PostWithCreatorName{PostRecord: *post, CreatorName: "someone"})
	return nil
}

func (c *countingRepo) UpdatePost(ctx context.Context, post *posts.PostRecord) error {
	for _, p := range c.listing {
		if p.ID == post.ID {
			p.PostRecord = *post
			return nil
		}
	}
	return posts.ErrNotFound
}

func (c *countingRepo) InTx(ctx context.Context, fn func(repo posts.Repository) error) error {
	return fn(c)
}

func setupTestRedis(t *testing.T, inner posts.Repository) (*cachedPostRepo, *goredis.Client) {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"))
	require.NoError(t, err, "Failed to connect to test redis")

	repo := NewCachedPostRepository(inner, client, time.Minute).(*cachedPostRepo)
	repo.key = "test:" + t.Name() + ":" + PostsWithCreatorKey

	t.Cleanup(func() {
		_ = client.Del(context.Background(), repo.key).Err()
		_ = client.Close()
	})
	return repo, client
}

func seededListing() []*posts.PostWithCreatorName {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*posts.PostWithCreatorName{
		{
			PostRecord: posts.PostRecord{
				ID: "p1", CreatorID: "u1", Title: "A", Content: "B",
				Likes: 2, CreatedAt: created, UpdatedAt: created,
			},
			CreatorName: "alice",
		},
	}
}

func TestCachedPostRepo_ReadThrough(t *testing.T) {
	inner := &countingRepo{listing: seededListing()}
	repo, client := setupTestRedis(t, inner)
	ctx := context.Background()

	first, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	second, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listCalls)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "alice", second[0].CreatorName)
	assert.Equal(t, 2, second[0].Likes)
	assert.True(t, first[0].CreatedAt.Equal(second[0].CreatedAt))

	ttl, err := client.TTL(ctx, repo.key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCachedPostRepo_WritesInvalidate(t *testing.T) {
	inner := &countingRepo{listing: seededListing()}
	repo, _ := setupTestRedis(t, inner)
	ctx := context.Background()

	_, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.InsertPost(ctx, &posts.PostRecord{ID: "p2", CreatorID: "u2"}))

	listing, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 2)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedPostRepo_InTxInvalidatesAfterCommit(t *testing.T) {
	inner := &countingRepo{listing: seededListing()}
	repo, _ := setupTestRedis(t, inner)
	ctx := context.Background()

	_, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)

	err = repo.InTx(ctx, func(tx posts.Repository) error {
		rec := inner.listing[0].PostRecord
		rec.Likes = 3
		return tx.UpdatePost(ctx, &rec)
	})
	require.NoError(t, err)

	listing, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, listing[0].Likes)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedPostRepo_FailedWriteKeepsCache(t *testing.T) {
	inner := &countingRepo{listing: seededListing(), writeErr: errors.New("insert failed")}
	repo, _ := setupTestRedis(t, inner)
	ctx := context.Background()

	_, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)

	err = repo.InsertPost(ctx, &posts.PostRecord{ID: "p2"})
	assert.Error(t, err)

	_, err = repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls)
}

func TestCachedPostRepo_UnreachableRedisFallsThrough(t *testing.T) {
	inner := &countingRepo{listing: seededListing()}
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCachedPostRepository(inner, client, 0)
	ctx := context.Background()

	listing, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 1)

	require.NoError(t, repo.InsertPost(ctx, &posts.PostRecord{ID: "p2"}))
	assert.Equal(t, 1, inner.listCalls)
}

func TestInvalidatePostListing_ForcesReload(t *testing.T) {
	inner := &countingRepo{listing: seededListing()}
	repo, client := setupTestRedis(t, inner)
	repo.key = PostsWithCreatorKey
	ctx := context.Background()
	require.NoError(t, InvalidatePostListing(ctx, client))

	_, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)

	inner.listing[0].CreatorName = "renamed"
	cached, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "renamed", cached[0].CreatorName)
	assert.Equal(t, 1, inner.listCalls)

	require.NoError(t, InvalidatePostListing(ctx, client))

	fresh, err := repo.GetPostsWithCreatorName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed", fresh[0].CreatorName)
	assert.Equal(t, 2, inner.listCalls)
}
