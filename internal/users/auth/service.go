// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/constants"
	"github.com/taibuivan/passage/internal/platform/validate"
	"github.com/taibuivan/passage/pkg/textnorm"
	"github.com/taibuivan/passage/pkg/uuid"
)

// Client-facing failures. The status overrides keep the codes the account
// frontend already handles.
var (
	errEmailTaken         = apperr.Conflict(msgEmailTaken).WithStatus(http.StatusBadRequest)
	errLoginUnknownUser   = apperr.NotFound(msgLoginUnknownUser).WithStatus(http.StatusBadRequest)
	errInvalidCredentials = apperr.Unauthorized(msgInvalidCredentials).WithStatus(http.StatusBadRequest)
	errChangeUnknownUser  = apperr.NotFound(msgChangeUnknownUser).WithStatus(http.StatusBadRequest)
	errOldPasswordWrong   = apperr.Unauthorized(msgOldPasswordWrong).WithStatus(http.StatusBadRequest)
	errForgotUnknownUser  = apperr.NotFound(msgForgotUnknownUser)
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	resetManager   *ResetManager
	tokenProvider  TokenProvider
	passwordHasher PasswordHasher
	mailer         Mailer
	resetBaseURL   string
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
//
// resetBaseURL is the frontend origin; reset links are built as
// <resetBaseURL>/resetpassword/<token>.
func NewService(
	userRepo UserRepository,
	resetManager *ResetManager,
	tokenProv TokenProvider,
	hasher PasswordHasher,
	mailer Mailer,
	resetBaseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		resetManager:   resetManager,
		tokenProvider:  tokenProv,
		passwordHasher: hasher,
		mailer:         mailer,
		resetBaseURL:   resetBaseURL,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then opens
a session for it.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Public profile plus session token
  - err: ValidationError, Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	name := textnorm.Line(input.Name)

	v := &validate.Validator{}
	v.Required(FieldName, name).
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := v.ErrMessage(msgFillRequired); err != nil {
		return nil, err
	}

	if err := validateNewPassword(input.Password, msgFillRequired); err != nil {
		return nil, err
	}

	v = &validate.Validator{}
	if err := v.Email(FieldEmail, input.Email).ErrMessage("Please enter a valid email"); err != nil {
		return nil, err
	}

	// Fast path for the common duplicate. The unique constraint still settles races.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, errEmailTaken
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Photo:        constants.DefaultPhoto,
		Phone:        constants.DefaultPhone,
		Bio:          constants.DefaultBio,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	session, err := service.openSession(user)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return session, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: A token is only issued once the email exists and the password
matches; no earlier failure path touches the token provider.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Public profile plus session token
  - err: ValidationError, NotFound, Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := v.ErrMessage(msgLoginRequired); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, errLoginUnknownUser
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.passwordHasher.Verify(input.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	session, err := service.openSession(user)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout ends the caller's session.

Sessions are stateless tokens, so there is nothing to revoke server-side; the
HTTP layer clears the cookie. The token is only inspected for logging.
*/
func (service *Service) Logout(context context.Context, token string) {
	if claims, err := service.tokenProvider.VerifyToken(token); err == nil {
		service.logger.InfoContext(context, "user_logged_out", slog.String("user_id", claims.UserID))
	}
}

// LoginStatus reports whether token is a currently valid session token.
func (service *Service) LoginStatus(token string) bool {
	if token == "" {
		return false
	}
	_, err := service.tokenProvider.VerifyToken(token)
	return err == nil
}

// openSession issues a session token for user.
func (service *Service) openSession(user *User) (*Session, error) {
	token, expiresAt, err := service.tokenProvider.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		Profile:   user.Profile(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their credentials.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - err: NotFound, ValidationError, Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return errChangeUnknownUser
		}
		return fmt.Errorf("auth_service_change_password_lookup_failed: %w", err)
	}

	v := &validate.Validator{}
	v.Required(FieldOldPassword, oldPassword).Required(FieldPassword, newPassword)
	if err := v.ErrMessage(msgChangeRequired); err != nil {
		return err
	}

	if err := validateNewPassword(newPassword, msgChangeRequired); err != nil {
		return err
	}

	if !service.passwordHasher.Verify(oldPassword, user.PasswordHash) {
		return errOldPasswordWrong
	}

	hashedPassword, err := service.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", userID))
	return nil
}

// # Password Recovery

/*
ForgotPassword emails a reset link to the owner of email.

Description: Unknown emails are reported as such; the account frontend relies
on the distinction.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: ValidationError, NotFound, MAIL_ERROR or storage failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	v := &validate.Validator{}
	if err := v.Required(FieldEmail, email).ErrMessage(msgEmailRequired); err != nil {
		return err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return errForgotUnknownUser
		}
		return fmt.Errorf("auth_service_forgot_password_lookup_failed: %w", err)
	}

	rawToken, err := service.resetManager.Generate(context, user.ID)
	if err != nil {
		return fmt.Errorf("auth_service_forgot_password_failed: %w", err)
	}

	resetURL := service.resetBaseURL + "/resetpassword/" + rawToken
	if err := service.mailer.SendPasswordReset(context, user.Email, user.Name, resetURL); err != nil {
		return apperr.Mail(err)
	}

	service.logger.InfoContext(context, "password_reset_requested", slog.String("user_id", user.ID))
	return nil
}

/*
ResetPassword completes the forgot-password flow.

Parameters:
  - context: context.Context
  - rawToken: string (as found in the reset link)
  - newPassword: string

Returns:
  - err: ValidationError, RESET_TOKEN_INVALID, RESET_TOKEN_EXPIRED or storage failures
*/
func (service *Service) ResetPassword(context context.Context, rawToken, newPassword string) error {
	if err := service.resetManager.Consume(context, rawToken, newPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_reset_completed")
	return nil
}
