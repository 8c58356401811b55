package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/carolcampos22/chatterbox/internal/core/posts"

	goredis "github.com/redis/go-redis/v9"
)

// PostsWithCreatorKey holds the cached JSON listing returned by GetPostsWithCreatorName
const PostsWithCreatorKey = "posts:with_creator"

// DefaultTTL is used when a non-positive TTL is configured
const DefaultTTL = 30 * time.Second

type cachedPostRepo struct {
	posts.Repository
	client *goredis.Client
	key    string
	ttl    time.Duration
}

// NewClient connects to Redis and verifies the connection with a PING
func NewClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// NewCachedPostRepository wraps inner with a read-through cache of the post listing.
// Reads other than the listing, and everything inside InTx, go straight to inner.
func NewCachedPostRepository(inner posts.Repository, client *goredis.Client, ttl time.Duration) posts.Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cachedPostRepo{
		Repository: inner,
		client:     client,
		key:        PostsWithCreatorKey,
		ttl:        ttl,
	}
}

func (r *cachedPostRepo) GetPostsWithCreatorName(ctx context.Context) ([]*posts.PostWithCreatorName, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	switch {
	case err == nil:
		var cached []*posts.PostWithCreatorName
		jsonErr := json.Unmarshal(data, &cached)
		if jsonErr == nil {
			return cached, nil
		}
		log.Printf("[CACHE] Discarding unreadable %s entry: %v", r.key, jsonErr)
	case errors.Is(err, goredis.Nil):
	default:
		log.Printf("[CACHE] Failed to read %s: %v", r.key, err)
	}

	result, err := r.Repository.GetPostsWithCreatorName(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		log.Printf("[CACHE] Failed to encode post listing: %v", err)
		return result, nil
	}
	if err := r.client.Set(ctx, r.key, encoded, r.ttl).Err(); err != nil {
		log.Printf("[CACHE] Failed to write %s: %v", r.key, err)
	}
	return result, nil
}

func (r *cachedPostRepo) InsertPost(ctx context.Context, post *posts.PostRecord) error {
	if err := r.Repository.InsertPost(ctx, post); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedPostRepo) UpdatePost(ctx context.Context, post *posts.PostRecord) error {
	if err := r.Repository.UpdatePost(ctx, post); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedPostRepo) DeletePostByID(ctx context.Context, id string) error {
	if err := r.Repository.DeletePostByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// InTx hands fn the inner transactional repository and drops the listing once the transaction commits
func (r *cachedPostRepo) InTx(ctx context.Context, fn func(repo posts.Repository) error) error {
	if err := r.Repository.InTx(ctx, fn); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedPostRepo) invalidate(ctx context.Context) {
	if err := deleteListing(ctx, r.client, r.key); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s: %v", r.key, err)
	}
}

// InvalidatePostListing drops the cached listing. Processes that change user
// names outside the post repository call it so creator names are not served stale.
func InvalidatePostListing(ctx context.Context, client *goredis.Client) error {
	return deleteListing(ctx, client, PostsWithCreatorKey)
}

func deleteListing(ctx context.Context, client *goredis.Client, key string) error {
	return client.Del(ctx, key).Err()
}
