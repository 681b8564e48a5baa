// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/passage/internal/platform/request"
	"github.com/taibuivan/passage/internal/platform/respond"
)

// Handler implements the HTTP layer for profile management.
//
// # Security
//
// Every endpoint requires an active session, enforced by the middleware
// passed to [NewHandler].
type Handler struct {
	accountService *Service
	requireSession func(http.Handler) http.Handler
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, requireSession func(http.Handler) http.Handler) *Handler {
	return &Handler{accountService: service, requireSession: requireSession}
}

// RegisterRoutes attaches the profile endpoints to router.
//
// # Endpoints
//   - GET   /getuser    : Returns the caller's profile.
//   - PATCH /updateuser : Applies a partial profile update.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(handler.requireSession)
		r.Get("/getuser", handler.getUser)
		r.Patch("/updateuser", handler.updateUser)
	})
}

// # User Profile Endpoints

/*
GET /api/users/getuser.

Description: Retrieves the public profile of the authenticated user.

Response:
  - 200: Profile: {_id, name, email, photo, phone, bio}
  - 400: User not found
  - 401: Authentication required
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// updateUserRequest defines the expected JSON payload for profile updates.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Photo *string `json:"photo"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}

/*
PATCH /api/users/updateuser.

Description: Applies partial updates to the authenticated user's profile.
Omitted or blank fields keep their value; email never changes.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: Profile: The updated profile
  - 400: Invalid input data
  - 401: Authentication required
  - 404: User not found
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
		Photo: input.Photo,
		Phone: input.Phone,
		Bio:   input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
