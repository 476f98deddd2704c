// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cookbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/cookbook/internal/platform/request"
	"github.com/taibuivan/cookbook/internal/platform/respond"
	"github.com/taibuivan/cookbook/internal/platform/validate"
)

// Handler implements the HTTP layer for user account management.
//
// Every endpoint requires an authenticated session.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Profile
	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)

	// Credentials
	router.Post("/change-password", handler.changePassword)
	router.Post("/change-email", handler.changeEmail)

	// Lifecycle
	router.Delete("/delete-account", handler.deleteAccount)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/user/profile.

Response:
  - 200: Profile with activity counts
  - 401: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
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

// updateProfileRequest defines the expected JSON payload for profile updates.
type updateProfileRequest struct {
	Name  *string `json:"name"`
	Bio   *string `json:"bio"`
	Image *string `json:"image"`
}

/*
PUT /api/v1/user/profile.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: The updated profile
  - 400: Invalid input data
  - 401: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 50)
	}
	if input.Bio != nil {
		v.MaxLen(FieldBio, *input.Bio, 200)
	}
	if input.Image != nil {
		image := *input.Image
		v.Optional(image, func(v *validate.Validator) { v.URL(FieldImage, image) })
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:  input.Name,
		Bio:   input.Bio,
		Image: input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Credential Endpoints

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

/*
POST /api/v1/user/change-password.

Response:
  - 200: Confirmation message
  - 400: PASSWORD_MISMATCH, NO_PASSWORD_ON_FILE, INVALID_CURRENT_PASSWORD or validation
  - 401: Authentication required
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

	v := &validate.Validator{}
	v.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		Required(FieldConfirmPassword, input.ConfirmPassword)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.accountService.ChangePassword(request.Context(), userID, ChangePasswordInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password changed successfully")
}

type changeEmailRequest struct {
	NewEmail string `json:"new_email"`
	Password string `json:"password"`
}

/*
POST /api/v1/user/change-email.

Response:
  - 200: {email}
  - 400: EMAIL_IN_USE, INVALID_CURRENT_PASSWORD or validation
  - 401: Authentication required
*/
func (handler *Handler) changeEmail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeEmailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	email, err := handler.accountService.ChangeEmail(request.Context(), userID, ChangeEmailInput{
		NewEmail: input.NewEmail,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldEmail: email})
}

// # Lifecycle Endpoints

/*
DELETE /api/v1/user/delete-account.

Response:
  - 200: Confirmation message
  - 401: Authentication required
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Account deleted successfully")
}
