// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// UserStore defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserStore]), optionally
// wrapped by the Redis read-through cache ([CachedUserStore]).
type UserStore interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no user is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByEmailOrUsername returns any account matching either value.
	// It exists solely for the uniqueness pre-check at registration.
	//
	// Returns [apperr.NotFound] if both values are available.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	//
	// Returns [apperr.Conflict] if the email or username is already taken.
	// Uniqueness under concurrent registration is enforced by the store's
	// unique constraints, not by any in-core coordination.
	Create(ctx context.Context, user *User) error
}
