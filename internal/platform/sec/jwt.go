// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([auth.TokenIssuer],
// [middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/akari/internal/platform/constants"
)

// SessionClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, the authentication gate
// can resolve the active user WITHOUT querying the database on every single
// API request. Session tokens are fully stateless: validity is a function of
// signature and expiry alone.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claim, abbreviated to keep the payload small.
	UserID string `json:"uid"`
}

// TokenService issues and verifies HS256 session tokens signed with a
// process-wide shared secret. Rotating the secret invalidates every
// outstanding token; key rotation is intentionally unsupported.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
}

// NewTokenService creates a new TokenService around the shared signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: constants.SessionTokenTTL,
	}, nil
}

// IssueSessionToken creates a signed session token for the given user.
// The token expires [constants.SessionTokenTTL] after issuance.
func (service *TokenService) IssueSessionToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string
// and returns the embedded user ID.
//
// It fails on a malformed token, a bad signature, an unexpected signing
// algorithm, or an expired token.
func (service *TokenService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid token claims")
	}

	if claims.UserID == "" {
		return "", errors.New("auth: token carries no subject")
	}

	return claims.UserID, nil
}
