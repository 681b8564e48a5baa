// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/constants"
	"github.com/taibuivan/passage/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/passage/internal/platform/request"
	"github.com/taibuivan/passage/internal/platform/respond"
	"github.com/taibuivan/passage/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService], allowing
// tests to inject stubs.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// errNotAuthorized is the single answer for any missing or unusable session.
var errNotAuthorized = apperr.Unauthorized("Not authorized, please login")

// RequireSession verifies the session cookie and rejects anonymous requests.
//
// # Flow
//  1. Read the session cookie; reject with 401 when absent.
//  2. Verify the token via [TokenVerifier]; reject with 401 when invalid or expired.
//  3. Inject [*sec.AuthClaims] into the request context for downstream use.
func RequireSession(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := requestutil.Cookie(request, constants.SessionCookieName)
			if token == "" {
				respond.Error(writer, request, errNotAuthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Debug("session_rejected", slog.Any("error", err))
				respond.Error(writer, request, errNotAuthorized)
				return
			}

			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
