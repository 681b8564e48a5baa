// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/passage/internal/platform/constants"
	requestutil "github.com/taibuivan/passage/internal/platform/request"
	"github.com/taibuivan/passage/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Registration, login, logout, login status, password change and the two
// halves of the password reset flow. Cookie handling lives only here; the
// [Service] deals in plain strings.
type Handler struct {
	authService    *Service
	requireSession func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// requireSession guards the endpoints that need a logged-in user.
func NewHandler(service *Service, requireSession func(http.Handler) http.Handler) *Handler {
	return &Handler{authService: service, requireSession: requireSession}
}

// RegisterRoutes attaches the authentication endpoints to router.
//
// # Endpoints
//   - POST  /register                    : Creates an account and logs it in.
//   - POST  /login                       : Authenticates and sets the session cookie.
//   - GET   /logout                      : Clears the session cookie.
//   - GET   /loggedin                    : Reports whether the session cookie is valid.
//   - PATCH /changepassword              : Rotates the password (session required).
//   - POST  /forgotpassword              : Emails a reset link.
//   - PUT   /resetpassword/{resetToken}  : Redeems a reset link.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/logout", handler.logout)
	router.Get("/loggedin", handler.loginStatus)
	router.Post("/forgotpassword", handler.forgotPassword)
	router.Put("/resetpassword/{resetToken}", handler.resetPassword)

	router.Group(func(r chi.Router) {
		r.Use(handler.requireSession)
		r.Patch("/changepassword", handler.changePassword)
	})
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	Password    string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/users/register

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: Session: Public profile plus token, session cookie set
  - 400: Missing fields, short password, invalid email, or email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session.Token, session.ExpiresAt)
	respond.Created(writer, session)
}

/*
Login authenticates a user and establishes a session.

POST /api/users/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Public profile plus token, session cookie set
  - 400: Missing fields, unknown email, or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session.Token, session.ExpiresAt)
	respond.OK(writer, session)
}

/*
Logout terminates the current user session.

GET /api/users/logout

Response:
  - 200: {"message": "Successfully logged out"}, session cookie expired
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.authService.Logout(request.Context(), requestutil.Cookie(request, constants.SessionCookieName))

	clearSessionCookie(writer)
	respond.Message(writer, msgLoggedOut)
}

/*
LoginStatus reports whether the caller holds a valid session.

GET /api/users/loggedin

Response:
  - 200: true or false
*/
func (handler *Handler) loginStatus(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Cookie(request, constants.SessionCookieName)
	respond.OK(writer, handler.authService.LoginStatus(token))
}

/*
ChangePassword updates the authenticated user's password.

PATCH /api/users/changepassword

Request:
  - Body: changePasswordRequest (OldPassword, Password)

Response:
  - 200: {"message": "Password changed successful"}
  - 400: Missing fields, short password, or old password incorrect
  - 401: No valid session
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.OldPassword, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, msgPasswordChanged)
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/users/forgotpassword

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: {"success": true, "message": "Reset Email Sent"}
  - 404: No account with that email
  - 500: Email could not be sent
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Success(writer, msgResetEmailSent)
}

/*
ResetPassword completes the forgot-password flow.

PUT /api/users/resetpassword/{resetToken}

Request:
  - Body: resetPasswordRequest (Password)

Response:
  - 200: {"message": "Password Reset Successful, Please Login"}
  - 400: Short password, or invalid or expired token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rawToken := requestutil.Param(request, FieldToken)
	if err := handler.authService.ResetPassword(request.Context(), rawToken, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, msgPasswordResetDone)
}

// # Cookie Helpers

// setSessionCookie stores the session token in an HttpOnly cookie that lives
// exactly as long as the token.
func setSessionCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearSessionCookie expires the session cookie in the browser.
func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
