// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/constants"
	"github.com/taibuivan/passage/internal/platform/validate"
	"github.com/taibuivan/passage/internal/users/auth"
	"github.com/taibuivan/passage/pkg/pointer"
	"github.com/taibuivan/passage/pkg/textnorm"
)

var (
	errProfileNotFound = apperr.NotFound("User not found").WithStatus(http.StatusBadRequest)
	errUpdateNotFound  = apperr.NotFound("User not found")
)

// # Service Layer

// Service orchestrates business logic for user profiles.
type Service struct {
	profileRepository ProfileRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(profileRepo ProfileRepository, logger *slog.Logger) *Service {
	return &Service{
		profileRepository: profileRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the public profile of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - auth.Profile: The user's public fields
  - error: NotFound (status 400) or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (auth.Profile, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return auth.Profile{}, errProfileNotFound
		}
		return auth.Profile{}, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user.Profile(), nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
//
// A nil or blank field keeps the stored value. Email is accepted so that
// clients may echo the whole profile back, but it is never applied.
type UpdateProfileInput struct {
	Name  *string
	Email *string
	Photo *string
	Phone *string
	Bio   *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing user state, overrides the supplied fields,
and synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - auth.Profile: The updated profile
  - error: NotFound (404), ValidationError or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (auth.Profile, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return auth.Profile{}, errUpdateNotFound
		}
		return auth.Profile{}, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	user.Name = keepOrReplace(user.Name, input.Name, textnorm.Line)
	user.Photo = keepOrReplace(user.Photo, input.Photo, textnorm.Line)
	user.Phone = keepOrReplace(user.Phone, input.Phone, textnorm.Line)
	user.Bio = keepOrReplace(user.Bio, input.Bio, textnorm.Clean)

	v := &validate.Validator{}
	v.MaxLen(FieldBio, user.Bio, constants.MaxBioLength)
	if input.Photo != nil && user.Photo != constants.DefaultPhoto {
		v.URL(FieldPhoto, user.Photo)
	}
	if err := v.Err(); err != nil {
		return auth.Profile{}, err
	}

	if err := service.profileRepository.UpdateProfile(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return auth.Profile{}, errUpdateNotFound
		}
		return auth.Profile{}, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return user.Profile(), nil
}

// keepOrReplace returns the cleaned supplied value, or current when the
// supplied value is absent or blank after cleaning.
func keepOrReplace(current string, supplied *string, clean func(string) string) string {
	if cleaned := clean(pointer.Val(supplied)); cleaned != "" {
		return cleaned
	}
	return current
}
