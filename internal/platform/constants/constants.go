// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, token lifetimes, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Authentication: Session token issuer and lifetime.
  - Caching: Redis key taxonomy and TTLs.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "akari-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "akari.app"

	// SessionTokenTTL is the lifetime of an issued session token.
	// Stateless tokens cannot be revoked, so validity is capped at one day.
	SessionTokenTTL = 24 * time.Hour

	// MsgNotAuthenticated is the single client-visible message for every
	// token failure (missing, malformed, bad signature, expired). Collapsing
	// them prevents leaking which check rejected the request.
	MsgNotAuthenticated = "not authenticated"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldMessage = "message"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixUserCache namespaces cached user records by ID.
	RedisPrefixUserCache = "auth:user:"

	// UserCacheTTL bounds staleness of cached user records. Accounts are
	// immutable after creation, so the TTL only limits memory usage.
	UserCacheTTL = 5 * time.Minute
)
