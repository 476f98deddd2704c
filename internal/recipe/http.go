// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cookbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/cookbook/internal/platform/request"
	"github.com/taibuivan/cookbook/internal/platform/respond"
	"github.com/taibuivan/cookbook/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for recipe management and discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new recipe [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the recipe endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Listing, detail and category counts.
//   - Management (Authenticated): Create, and owner-only update/delete.
//
// Other packages may register sub-resources of /{id} on the returned router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listRecipes)
	router.Get("/categories/counts", handler.categoryCounts)
	router.Get("/{id}", handler.getRecipe)

	// ## Content Management
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/mine", handler.listMine)
		protected.Get("/favorites", handler.listFavorites)
		protected.Post("/", handler.createRecipe)
		protected.Put("/{id}", handler.updateRecipe)
		protected.Delete("/{id}", handler.deleteRecipe)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/recipes.

Request:
  - search: string (Case-insensitive match on title or description)
  - category: string (Exact category)
  - difficulty: string (Easy, Medium, Hard; other values are ignored)
  - page: int
  - limit: int (Default 12, max 100)

Response:
  - 200: []Recipe: Paginated list of recipes
*/
func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequestWithLimit(request, DefaultPageSize)
	queryParams := request.URL.Query()

	filter := Filter{
		Category: queryParams.Get(FieldCategory),
		Search:   queryParams.Get(FieldSearch),
	}

	if difficulty := Difficulty(queryParams.Get(FieldDifficulty)); difficulty.IsValid() {
		filter.Difficulty = difficulty
	}

	recipes, meta, err := handler.service.List(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, meta)
}

/*
GET /api/v1/recipes/mine.

Response:
  - 200: []Recipe: Paginated recipes created by the caller
  - 401: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	handler.listForUser(writer, request, func(filter *Filter, userID string) { filter.OwnerID = userID })
}

/*
GET /api/v1/recipes/favorites.

Response:
  - 200: []Recipe: Paginated recipes the caller has favorited
  - 401: Authentication required
*/
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	handler.listForUser(writer, request, func(filter *Filter, userID string) { filter.FavoritedBy = userID })
}

func (handler *Handler) listForUser(writer http.ResponseWriter, request *http.Request, scope func(filter *Filter, userID string)) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var filter Filter
	scope(&filter, userID)

	recipes, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequestWithLimit(request, DefaultPageSize))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, meta)
}

/*
GET /api/v1/recipes/categories/counts.

Response:
  - 200: CategoryCounts
*/
func (handler *Handler) categoryCounts(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.CategoryCounts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, counts)
}

/*
GET /api/v1/recipes/{id}.

Response:
  - 200: Recipe with owner, ratings and favorite count
  - 404: Recipe not found
*/
func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ResourceID(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipe)
}

// # Mutation Endpoints

/*
POST /api/v1/recipes.

Request:
  - Draft (JSON body)

Response:
  - 201: Recipe
  - 400: Validation failed
  - 401: Authentication required
*/
func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.Create(request.Context(), userID, draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, recipe)
}

/*
PUT /api/v1/recipes/{id}.

Request:
  - Patch (JSON body; omitted fields are kept)

Response:
  - 200: Recipe
  - 400: Validation failed
  - 401: Authentication required
  - 403: Caller is not the owner
  - 404: Recipe not found
*/
func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ResourceID(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.Update(request.Context(), id, userID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recipe)
}

/*
DELETE /api/v1/recipes/{id}.

Response:
  - 200: Confirmation message
  - 401: Authentication required
  - 403: Caller is not the owner
  - 404: Recipe not found
*/
func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ResourceID(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Recipe deleted successfully")
}
