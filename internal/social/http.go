// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cookbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/cookbook/internal/platform/request"
	"github.com/taibuivan/cookbook/internal/platform/respond"
)

// Handler implements the engagement HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new engagement [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the engagement endpoints on the recipes router.
//
// # Endpoints
//   - POST /{id}/favorite : Toggles the caller's bookmark.
//   - POST /{id}/rating   : Creates or replaces the caller's rating.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/{id}/favorite", handler.toggleFavorite)
		protected.Post("/{id}/rating", handler.rate)
	})
}

/*
POST /api/v1/recipes/{id}/favorite.

Response:
  - 200: {favorited: bool}
  - 401: Authentication required
  - 404: Recipe not found
*/
func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID, err := requestutil.ResourceID(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorited, err := handler.service.ToggleFavorite(request.Context(), userID, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{FieldFavorited: favorited})
}

/*
POST /api/v1/recipes/{id}/rating.

Request:
  - rating: int (1..5)
  - comment: string (optional, max 1000)

Response:
  - 201: Rating (created)
  - 200: Rating (replaced)
  - 400: Validation failed
  - 401: Authentication required
  - 404: Recipe not found
*/
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID, err := requestutil.ResourceID(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, created, err := handler.service.Rate(request.Context(), userID, recipeID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	respond.Status(writer, status, rating)
}
