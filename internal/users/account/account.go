// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile retrieval and profile updates.

It lets an authenticated user read their public profile and change its
mutable fields. Credentials are out of scope here and belong to the auth
package.

# Architecture

  - Entities: This package reuses [auth.User] and its [auth.Profile] view.
  - Domain: Email is the login key and is never changed through this package.
*/
package account

import (
	"context"

	"github.com/taibuivan/passage/internal/users/auth"
)

// # Repository Contracts

// ProfileRepository defines the persistence contract for user profiles.
type ProfileRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile writes name, photo, phone and bio of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateProfile(context context.Context, user *auth.User) error
}

// # Field Identifiers

const (
	FieldName  = "name"
	FieldPhoto = "photo"
	FieldPhone = "phone"
	FieldBio   = "bio"
)
