// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/akari/internal/platform/constants"
	"github.com/taibuivan/akari/internal/platform/ctxutil"
)

// cachedUser mirrors [User] with every field exported to JSON, including the
// password hash. The public entity hides the hash from API encoding, but the
// cache must round-trip the full record.
type cachedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CachedUserStore decorates a [UserStore] with a Redis read-through cache
// for ID lookups, the hot path behind every authenticated request.
//
// # Staleness
//
// Accounts are immutable after creation, so cached records can never go
// stale; [constants.UserCacheTTL] only bounds memory usage. Cache failures
// are logged and degrade to the underlying store, never to request errors.
type CachedUserStore struct {
	next   UserStore
	client *redis.Client
}

// NewCachedUserStore wraps next with the Redis cache.
func NewCachedUserStore(next UserStore, client *redis.Client) *CachedUserStore {
	return &CachedUserStore{next: next, client: client}
}

// FindByID returns the cached record when present, falling back to the
// underlying store and priming the cache on a miss.
func (store *CachedUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	key := constants.RedisPrefixUserCache + id

	payload, err := store.client.Get(ctx, key).Bytes()
	if err == nil {
		cached := &cachedUser{}
		if err := json.Unmarshal(payload, cached); err == nil {
			return cached.toUser(), nil
		}
		// Undecodable entry: drop it and fall through to the store.
		_ = store.client.Del(ctx, key).Err()
	}

	user, err := store.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	store.prime(ctx, user)
	return user, nil
}

// FindByEmail delegates to the underlying store. Login is rare compared to
// token-authenticated reads, so email lookups are not cached.
func (store *CachedUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return store.next.FindByEmail(ctx, email)
}

// FindByEmailOrUsername delegates to the underlying store. The uniqueness
// pre-check must always observe the latest persisted state.
func (store *CachedUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	return store.next.FindByEmailOrUsername(ctx, email, username)
}

// Create delegates to the underlying store and primes the cache so the
// first authenticated request after registration is already warm.
func (store *CachedUserStore) Create(ctx context.Context, user *User) error {
	if err := store.next.Create(ctx, user); err != nil {
		return err
	}

	store.prime(ctx, user)
	return nil
}

// prime stores the record under its ID key. Best effort: a cache write
// failure must never fail the request that triggered it.
func (store *CachedUserStore) prime(ctx context.Context, user *User) {
	cached := &cachedUser{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return
	}

	key := constants.RedisPrefixUserCache + user.ID
	if err := store.client.Set(ctx, key, payload, constants.UserCacheTTL).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "user_cache_prime_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// toUser converts the cache representation back to the domain entity.
func (cached *cachedUser) toUser() *User {
	return &User{
		ID:           cached.ID,
		Email:        cached.Email,
		Username:     cached.Username,
		PasswordHash: cached.PasswordHash,
		CreatedAt:    cached.CreatedAt,
		UpdatedAt:    cached.UpdatedAt,
	}
}
