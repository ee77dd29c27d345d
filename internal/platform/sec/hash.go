// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor applied to every new hash.
// Fixed at 12: existing hashes stay verifiable if this ever changes, since
// bcrypt embeds the cost in the stored value.
const passwordHashCost = 12

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt generates a random salt per call, so hashing the same password
// twice yields different stored values — both valid under [CheckPasswordHash].
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// Any comparison error — including a malformed stored hash — reports false
// rather than surfacing a distinct fault, so callers cannot tell "bad hash"
// apart from "wrong password".
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
