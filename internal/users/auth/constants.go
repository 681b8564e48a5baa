// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Password Recovery Constraints

const (
	// ResetTokenTTL is how long a password reset link stays usable.
	ResetTokenTTL = 30 * time.Minute

	// ResetTokenRetention keeps an expired reset record around so that a late
	// click reports "expired" instead of "invalid".
	ResetTokenRetention = 24 * time.Hour

	// ResetTokenLength is the byte length of the random part of a reset token.
	ResetTokenLength = 32
)

// # Client Messages

const (
	msgFillRequired        = "Please fill in all required fields"
	msgPasswordTooShort    = "Password must be up to 6 characters"
	msgEmailTaken          = "Email has already been registered"
	msgLoginRequired       = "Please add email and password"
	msgLoginUnknownUser    = "User not found, please sign up"
	msgInvalidCredentials  = "Invalid Email or Password"
	msgChangeUnknownUser   = "User not found, please signup"
	msgChangeRequired      = "Please add old and new Password"
	msgOldPasswordWrong    = "Old password is incorrect"
	msgForgotUnknownUser   = "User does not exist"
	msgResetTokenInvalid   = "Invalid or Expired Token"
	msgResetTokenExpired   = "Reset token has expired"
	msgLoggedOut           = "Successfully logged out"
	msgPasswordChanged     = "Password changed successful"
	msgResetEmailSent      = "Reset Email Sent"
	msgPasswordResetDone   = "Password Reset Successful, Please Login"
	msgEmailRequired       = "Please add an email"
	msgResetPasswordNeeded = "Please add a new password"
)
