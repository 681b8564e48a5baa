// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, cookie attributes, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Security: JWT issuer and session cookie configuration.
  - Storage: Redis key prefixes and profile defaults.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "passage-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Password reset requests include an SMTP round trip, so this is wider than the read side.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 15 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "passage"

	// SessionTokenTTL is the lifetime of a session token and of the cookie carrying it.
	SessionTokenTTL = 24 * time.Hour

	// SessionCookieName is the name of the cookie that stores the session token.
	SessionCookieName = "token"

	// SessionCookiePath is the scoped path for the session cookie.
	SessionCookiePath = "/"

	// MinPasswordLength is the shortest accepted plain-text password.
	MinPasswordLength = 6
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldSuccess = "success"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Profile Defaults

const (
	DefaultPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultPhone = "+234"
	DefaultBio   = "bio"

	// MaxBioLength is the longest accepted biography.
	MaxBioLength = 250
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
	RedisPrefixResetUser  = "auth:reset_user:"
)
