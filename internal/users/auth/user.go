// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and credential lifecycle.

It defines the core domain entities (User, ResetToken) and the operations that
create accounts, establish sessions, and recover or rotate passwords.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered account holder.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Photo        string    `json:"photo"`
	Phone        string    `json:"phone"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Profile is the public view of a [User] returned by every account endpoint.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// Profile projects the user onto its public fields.
func (user *User) Profile() Profile {
	return Profile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Phone: user.Phone,
		Bio:   user.Bio,
	}
}

// Session is the outcome of a successful registration or login.
//
// It embeds the profile so that the JSON body is flat:
// {"_id", "name", "email", "photo", "phone", "bio", "token"}.
type Session struct {
	Profile
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// ResetToken is the stored half of a password reset link.
//
// Only the SHA-256 hash of the raw token is kept; the raw value exists in the
// email and nowhere else.
type ResetToken struct {
	UserID    string    `json:"userId"`
	TokenHash string    `json:"tokenHash"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token can no longer be used at now.
func (token *ResetToken) Expired(now time.Time) bool {
	return now.After(token.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOldPassword = "oldPassword"
	FieldToken       = "resetToken"
)
