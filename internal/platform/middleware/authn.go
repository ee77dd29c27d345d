// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/akari/internal/platform/apperr"
	"github.com/taibuivan/akari/internal/platform/constants"
	"github.com/taibuivan/akari/internal/platform/ctxutil"
	"github.com/taibuivan/akari/internal/platform/respond"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// implementation, allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	// VerifyToken returns the user ID embedded in a valid token.
	VerifyToken(tokenString string) (string, error)
}

// Authenticate is the authentication gate: it extracts and verifies the
// bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous; protected operations
//     reject it downstream.
//  3. If present, split on whitespace and verify the token portion.
//  4. Inject the resolved user ID into the request context.
//
// Every failure — malformed header, wrong scheme, bad signature, expired
// token — collapses into the same 401 "not authenticated" response so the
// client cannot distinguish which check rejected it.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized(constants.MsgNotAuthenticated))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized(constants.MsgNotAuthenticated))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithUserID(request.Context(), userID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
