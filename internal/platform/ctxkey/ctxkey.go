// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys shared by middleware and handlers.
//
// The unexported key type keeps these keys from colliding with string keys
// set by other packages.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeySession holds the verified session claims ([*sec.AuthClaims]).
	KeySession key = "session"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
