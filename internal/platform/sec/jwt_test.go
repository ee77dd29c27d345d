// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/akari/internal/platform/sec"
)

const testSecret = "test-signing-secret"

/*
TestTokenService_RoundTrip verifies that an issued token resolves back to
the same user ID it was issued for.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "akari.test")
	require.NoError(t, err)

	token, err := service.IssueSessionToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

/*
TestTokenService_EmptySecret verifies that the service refuses to start
without a signing secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "akari.test")
	assert.Error(t, err)
}

/*
TestTokenService_RejectsTampered verifies that altering the signature
invalidates the token.
*/
func TestTokenService_RejectsTampered(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "akari.test")
	require.NoError(t, err)

	token, err := service.IssueSessionToken("user-123")
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsWrongSecret verifies that a token signed with a
different secret never verifies.
*/
func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer, err := sec.NewTokenService("secret-one", "akari.test")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("secret-two", "akari.test")
	require.NoError(t, err)

	token, err := issuer.IssueSessionToken("user-123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsExpired verifies that an expired token is rejected.
The token is forged directly with the same secret so the test doesn't have
to wait for a real expiry.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "akari.test")
	require.NoError(t, err)

	claims := sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
		UserID: "user-123",
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.VerifyToken(expired)
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "expired")
}

/*
TestTokenService_RejectsMalformed verifies that garbage input fails with an
error rather than panicking.
*/
func TestTokenService_RejectsMalformed(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "akari.test")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two_segments", "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}
