// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/passage/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (exact match)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict when the email is taken, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing password reset tokens.
//
// A user owns at most one token at a time: saving a new token for a user
// removes the previous one.
type ResetTokenRepository interface {

	/*
		Save stores a reset token, replacing any token the same user already holds.

		Parameters:
		  - context: context.Context
		  - token: *ResetToken
		  - retention: time.Duration (how long the record outlives its expiry)

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, token *ResetToken, retention time.Duration) error

	/*
		FindByHash retrieves a token record by the hash of its raw value.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *ResetToken: Stored record, possibly already expired
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByHash(context context.Context, tokenHash string) (*ResetToken, error)

	/*
		Delete claims a token for use by removing it. At most one caller
		succeeds for a given token; the others get apperr.NotFound.

		Parameters:
		  - context: context.Context
		  - token: *ResetToken

		Returns:
		  - error: apperr.NotFound when already removed, or persistence failures
	*/
	Delete(context context.Context, token *ResetToken) error
}

// # Collaborators

// TokenProvider issues and verifies session tokens.
type TokenProvider interface {
	// Issue creates a signed session token and reports when it expires.
	Issue(userID string) (string, time.Time, error)

	// VerifyToken returns the claims of a valid token, or an error.
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// PasswordHasher hashes and verifies plain-text passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// Mailer delivers the password reset email.
type Mailer interface {
	SendPasswordReset(context context.Context, recipient, name, resetURL string) error
}
