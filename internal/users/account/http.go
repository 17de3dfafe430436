// Copyright (c) 2026 Workbay. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workbay/workbay/internal/platform/middleware"
	requestutil "github.com/workbay/workbay/internal/platform/request"
	"github.com/workbay/workbay/internal/platform/respond"
	"github.com/workbay/workbay/internal/platform/validate"
)

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET    /{username}   : Public profile view.
//   - PATCH  /me           : Partial update of the caller's profile.
//   - PUT    /me/password  : Rotate the caller's password.
//   - DELETE /me           : Deactivate the caller's account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Protected endpoints first so "/me" never falls through to the
	// public "{username}" matcher.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Patch("/me", handler.updateProfile)
		r.Put("/me/password", handler.changePassword)
		r.Delete("/me", handler.deactivate)
	})

	// Public endpoints
	router.Get("/{username}", handler.publicProfile)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
UpdateProfile applies a partial update to the caller's own profile.

PATCH /api/v1/users/me

Response:
  - 200: User: Updated profile
  - 401: ErrUnauthorized
  - 409: ErrConflict: Email already in use
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).
			Email(FieldEmail, *input.Email)
	}
	if input.FullName != nil {
		validator.MaxLen(FieldFullName, *input.FullName, 100)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), principal.UserID, UpdateProfileInput{
		Email:    input.Email,
		FullName: input.FullName,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword rotates the caller's password.

PUT /api/v1/users/me/password

Response:
  - 204: No content
  - 401: ErrUnauthorized: Wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(
		request.Context(), principal.UserID, input.CurrentPassword, input.NewPassword,
	); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Deactivate disables the caller's account.

DELETE /api/v1/users/me

Response:
  - 204: No content
  - 401: ErrUnauthorized
*/
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Deactivate(request.Context(), principal.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PublicProfile returns the public view of a member by username.

GET /api/v1/users/{username}

Response:
  - 200: PublicProfile
  - 404: ErrNotFound: Unknown or deactivated user
*/
func (handler *Handler) publicProfile(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	profile, err := handler.accountService.PublicProfileByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
