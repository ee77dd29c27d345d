// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/akari/internal/platform/apperr"
	"github.com/taibuivan/akari/internal/platform/sec"
	"github.com/taibuivan/akari/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating session tokens.
type TokenIssuer interface {
	// IssueSessionToken creates a signed session token for the given user.
	IssueSessionToken(userID string) (string, error)
}

// Service implements the user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	users  UserStore
	tokens TokenIssuer
}

// NewService constructs a new [Service] with its dependencies injected,
// so tests can substitute an in-memory store and a fake issuer.
func NewService(users UserStore, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// # Authentication Flow

// Login validates user credentials and issues a session token.
//
// The flow is a single linear pass: look up by email, verify the password
// against the stored bcrypt hash, and sign a token carrying the user ID.
// Nothing is persisted.
//
// Both failure paths return UNAUTHORIZED. The messages differ ("user not
// found" vs "invalid password") to match historical API behavior; no dummy
// hash comparison is performed on the not-found path.
func (service *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperr.Unauthorized("user not found")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return "", apperr.Unauthorized("invalid password")
	}

	token, err := service.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return token, nil
}

// # Registration Flow

// Register hashes the password and persists a brand new user account.
//
// It reports true on success and does not auto-login: the client is
// expected to follow up with [Service.Login].
//
// Uniqueness is checked twice: a friendly pre-check against email and
// username, and the database unique constraints as the authoritative
// backstop for concurrent registrations. Both collisions surface as the
// same CONFLICT error.
func (service *Service) Register(ctx context.Context, email, password, username string) (bool, error) {

	// Pre-check either identity. err == nil means a colliding row exists.
	_, err := service.users.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return false, apperr.Conflict("user already exists")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	now := time.Now()
	user := &User{
		ID:           uuidv7.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store maps a constraint race (SQLSTATE 23505) to the same
	// CONFLICT error the pre-check produces.
	if err := service.users.Create(ctx, user); err != nil {
		return false, err
	}

	return true, nil
}

// # Current User

// CurrentUser resolves the account behind an already-verified user ID.
//
// A missing account returns (nil, nil) rather than an error: tokens are not
// invalidated when accounts disappear, so the contract must tolerate a
// dangling ID until the token's natural expiry.
func (service *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
