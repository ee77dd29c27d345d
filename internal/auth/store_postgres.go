// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/akari/internal/platform/apperr"
	"github.com/taibuivan/akari/internal/platform/dberr"
)

// userColumns is the canonical column list shared by every SELECT.
const userColumns = `id, email, username, password_hash, created_at, updated_at`

// PostgresUserStore implements the [UserStore] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] values so callers never see driver
// internals.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new PostgreSQL implementation of the [UserStore].
func NewUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// Create persists a new user record into the account table.
//
// A unique-constraint violation on email or username — including one caused
// by a concurrent registration that won the race — surfaces as
// [apperr.Conflict].
func (store *PostgresUserStore) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO account (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := store.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("user already exists")
		}
		return dberr.Wrap(err, "postgres_user_store_create")
	}

	return nil
}

// FindByID retrieves a user record by its primary key.
func (store *PostgresUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE id = $1`

	return store.queryOne(ctx, query, id)
}

// FindByEmail retrieves a user record by its unique email address.
// Matching is exact; no case folding is applied.
func (store *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE email = $1`

	return store.queryOne(ctx, query, email)
}

// FindByEmailOrUsername retrieves any record colliding with either value.
func (store *PostgresUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE email = $1 OR username = $2
		LIMIT 1`

	return store.queryOne(ctx, query, email, username)
}

// queryOne executes a single-row query and scans it into a [User].
func (store *PostgresUserStore) queryOne(ctx context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := store.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "postgres_user_store_query")
	}

	return user, nil
}
