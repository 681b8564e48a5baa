// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/constants"
	"github.com/taibuivan/passage/internal/platform/sec"
	"github.com/taibuivan/passage/internal/platform/validate"
)

var (
	errResetTokenInvalid = apperr.BadRequest(apperr.CodeTokenInvalid, msgResetTokenInvalid)
	errResetTokenExpired = apperr.BadRequest(apperr.CodeTokenExpired, msgResetTokenExpired)
)

// ResetManager issues and redeems single-use password reset tokens.
//
// A raw token is 32 random bytes (hex) followed by the user ID. Only its
// SHA-256 hash is persisted, so a leaked store cannot be replayed into links.
type ResetManager struct {
	tokens     ResetTokenRepository
	users      UserRepository
	hasher     PasswordHasher
	timeToLive time.Duration
	now        func() time.Time
}

// NewResetManager constructs a [ResetManager] with the default 30 minute lifetime.
func NewResetManager(tokens ResetTokenRepository, users UserRepository, hasher PasswordHasher) *ResetManager {
	return &ResetManager{
		tokens:     tokens,
		users:      users,
		hasher:     hasher,
		timeToLive: ResetTokenTTL,
		now:        time.Now,
	}
}

// WithClock returns a copy of the manager reading the current time from now.
func (manager *ResetManager) WithClock(now func() time.Time) *ResetManager {
	clone := *manager
	clone.now = now
	return &clone
}

/*
Generate creates a reset token for the user and stores its hash.

Any token the user held before stops working.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Raw token to embed in the reset link
  - error: Randomness or storage failures
*/
func (manager *ResetManager) Generate(context context.Context, userID string) (string, error) {
	random, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("reset_manager_generate_failed: %w", err)
	}
	rawToken := random + userID

	createdAt := manager.now().UTC()
	record := &ResetToken{
		UserID:    userID,
		TokenHash: sec.HashToken(rawToken),
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(manager.timeToLive),
	}

	if err := manager.tokens.Save(context, record, ResetTokenRetention); err != nil {
		return "", fmt.Errorf("reset_manager_save_failed: %w", err)
	}

	return rawToken, nil
}

/*
Consume redeems a raw reset token and sets the user's new password.

Description: The token is deleted before the password is written, so it can
be redeemed at most once even if the password update then fails.

Parameters:
  - context: context.Context
  - rawToken: string
  - newPassword: string

Returns:
  - error: ValidationError, RESET_TOKEN_INVALID, RESET_TOKEN_EXPIRED, or storage failures
*/
func (manager *ResetManager) Consume(context context.Context, rawToken, newPassword string) error {
	if err := validateNewPassword(newPassword, msgResetPasswordNeeded); err != nil {
		return err
	}

	if rawToken == "" {
		return errResetTokenInvalid
	}

	record, err := manager.tokens.FindByHash(context, sec.HashToken(rawToken))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return errResetTokenInvalid
		}
		return fmt.Errorf("reset_manager_lookup_failed: %w", err)
	}

	if record.Expired(manager.now()) {
		return errResetTokenExpired
	}

	hashedPassword, err := manager.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset_manager_hash_failed: %w", err)
	}

	// Claiming the token is the point of no return: a concurrent redemption
	// that lost the race finds it gone.
	if err := manager.tokens.Delete(context, record); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return errResetTokenInvalid
		}
		return fmt.Errorf("reset_manager_claim_failed: %w", err)
	}

	if err := manager.users.UpdatePassword(context, record.UserID, hashedPassword); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return errResetTokenInvalid
		}
		return fmt.Errorf("reset_manager_update_password_failed: %w", err)
	}

	return nil
}

// validateNewPassword applies the password rules shared by every flow that
// sets a password. missingMessage is reported when the value is blank.
func validateNewPassword(password, missingMessage string) error {
	v := &validate.Validator{}
	if err := v.Required(FieldPassword, password).ErrMessage(missingMessage); err != nil {
		return err
	}

	v = &validate.Validator{}
	return v.MinLen(FieldPassword, password, constants.MinPasswordLength).ErrMessage(msgPasswordTooShort)
}
