// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/dberr"
	"github.com/taibuivan/cookbook/internal/platform/validate"
	"github.com/taibuivan/cookbook/pkg/pointer"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

// # Service Layer

// Service orchestrates favorites and ratings.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new engagement [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

/*
ToggleFavorite flips the caller's bookmark on a recipe.

Description: The delete runs first. If nothing was deleted an insert
follows, and a unique violation on that insert means a concurrent toggle
already created the row, which is reported as favorited.

Parameters:
  - context: context.Context
  - userID: string
  - recipeID: string

Returns:
  - bool: The new state (true = favorited)
  - error: NOT_FOUND when the recipe does not exist
*/
func (service *Service) ToggleFavorite(context context.Context, userID, recipeID string) (bool, error) {
	removed, err := service.repository.RemoveFavorite(context, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("social_service_unfavorite_failed: %w", err)
	}

	if removed {
		service.logger.Info("recipe_unfavorited", slog.String("recipe_id", recipeID), slog.String("user_id", userID))
		return false, nil
	}

	favorite := &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: service.now().UTC(),
	}

	err = service.repository.AddFavorite(context, favorite)
	switch {
	case err == nil:
		service.logger.Info("recipe_favorited", slog.String("recipe_id", recipeID), slog.String("user_id", userID))
		return true, nil
	case dberr.IsUniqueViolation(err):
		return true, nil
	case dberr.IsForeignKeyViolation(err):
		return false, apperr.NotFound("Recipe").WithCause(err)
	default:
		return false, fmt.Errorf("social_service_favorite_failed: %w", err)
	}
}

/*
Rate creates or overwrites the caller's rating of a recipe.

Parameters:
  - context: context.Context
  - userID: string
  - recipeID: string
  - input: RateInput

Returns:
  - *Rating: The stored rating with author summary
  - bool: true when a new rating was created
  - error: VALIDATION_ERROR, NOT_FOUND or persistence errors
*/
func (service *Service) Rate(context context.Context, userID, recipeID string, input RateInput) (*Rating, bool, error) {
	if input.Comment != nil {
		input.Comment = pointer.NilIfZero(strings.TrimSpace(*input.Comment))
	}

	if err := validate.Struct(input); err != nil {
		return nil, false, err
	}

	rating := &Rating{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		UpdatedAt: service.now().UTC(),
	}

	created, err := service.repository.UpsertRating(context, rating)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return nil, false, apperr.NotFound("Recipe").WithCause(err)
		}
		return nil, false, fmt.Errorf("social_service_rate_failed: %w", err)
	}

	service.logger.Info("recipe_rated",
		slog.String("recipe_id", recipeID),
		slog.String("user_id", userID),
		slog.Int("rating", rating.Rating),
		slog.Bool("created", created),
	)

	return rating, created, nil
}
