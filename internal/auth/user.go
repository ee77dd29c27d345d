// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements the credential and session-issuance core of Akari.
//
// It handles user registration, password verification, and stateless session
// token issuance.
//
// Architecture:
//
//   - Service: Orchestrates the login, register, and current-user flows.
//   - UserStore: Abstracted persistence contract (PostgreSQL, Redis cache).
//   - Security: Bcrypt hashing and HS256 session tokens via platform/sec.
package auth

import (
	"time"
)

// User represents a registered account.
//
// # Rules
//   - Email and Username are each globally unique (exact match).
//   - ID is assigned at creation and never changes.
//   - PasswordHash is generated exclusively via [Service.Register] and is
//     never stored or transmitted in plaintext form.
//
// Accounts are created only through registration. No update or deletion
// flow exists in this core.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
