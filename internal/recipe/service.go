// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/validate"
	"github.com/taibuivan/cookbook/pkg/normalize"
	"github.com/taibuivan/cookbook/pkg/pagination"
	"github.com/taibuivan/cookbook/pkg/slice"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

// # Service Layer

// Service orchestrates the recipe lifecycle and catalogue discovery.
type Service struct {
	repository  Repository
	invalidator Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new [Service]. invalidator may be nil.
func NewService(repository Repository, invalidator Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the time source.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # Recipe Lifecycle

/*
Create validates a draft and persists it with the caller as owner.

Parameters:
  - context: context.Context
  - ownerID: string
  - draft: Draft

Returns:
  - *Recipe: The stored recipe with owner summary
  - error: VALIDATION_ERROR or persistence errors
*/
func (service *Service) Create(context context.Context, ownerID string, draft Draft) (*Recipe, error) {
	draft = clean(draft)
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	recipe := &Recipe{
		ID:        uuid.New(),
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	recipe.apply(draft)

	if err := service.repository.Create(context, recipe); err != nil {
		return nil, fmt.Errorf("recipe_service_create_failed: %w", err)
	}

	service.logger.Info("recipe_created",
		slog.String("recipe_id", recipe.ID),
		slog.String("user_id", ownerID),
		slog.String("category", recipe.Category),
	)
	service.publish(context, recipe.ID, ActionCreated, recipe.Category)

	return service.Get(context, recipe.ID)
}

// Get returns a recipe with owner, ratings (newest first) and favorite count.
func (service *Service) Get(context context.Context, id string) (*Recipe, error) {
	recipe, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("recipe_service_get_failed: %w", err)
	}
	return recipe, nil
}

/*
Update replaces the provided fields of a recipe owned by callerID.

Description: A missing recipe is reported before an ownership mismatch. The
merged document is validated like a new draft, so a patch can never leave
a recipe without ingredients.

Parameters:
  - context: context.Context
  - id: string
  - callerID: string
  - patch: Patch

Returns:
  - *Recipe: The updated recipe
  - error: NOT_FOUND, FORBIDDEN, VALIDATION_ERROR or persistence errors
*/
func (service *Service) Update(context context.Context, id, callerID string, patch Patch) (*Recipe, error) {
	recipe, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("recipe_service_update_lookup_failed: %w", err)
	}

	if recipe.UserID != callerID {
		return nil, apperr.Forbidden("You can only edit your own recipes")
	}

	draft := clean(patch.Merge(recipe.Draft()))
	if err := validate.Struct(draft); err != nil {
		return nil, err
	}

	recipe.apply(draft)
	recipe.UpdatedAt = service.now().UTC()

	if err := service.repository.Update(context, recipe); err != nil {
		return nil, fmt.Errorf("recipe_service_update_failed: %w", err)
	}

	service.logger.Info("recipe_updated", slog.String("recipe_id", id), slog.String("user_id", callerID))
	service.publish(context, id, ActionUpdated, recipe.Category)

	return service.Get(context, id)
}

/*
Delete removes a recipe owned by callerID together with its ratings and favorites.

Parameters:
  - context: context.Context
  - id: string
  - callerID: string

Returns:
  - error: NOT_FOUND, FORBIDDEN or persistence errors
*/
func (service *Service) Delete(context context.Context, id, callerID string) error {
	ownerID, err := service.repository.FindOwnerID(context, id)
	if err != nil {
		return fmt.Errorf("recipe_service_delete_lookup_failed: %w", err)
	}

	if ownerID != callerID {
		return apperr.Forbidden("You can only delete your own recipes")
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("recipe_service_delete_failed: %w", err)
	}

	service.logger.Info("recipe_deleted", slog.String("recipe_id", id), slog.String("user_id", callerID))
	service.publish(context, id, ActionDeleted, "")

	return nil
}

// # Discovery

/*
List returns one page of recipes matching filter.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Recipe: Page items (never nil)
  - pagination.Meta: Page metadata; zero matches report zero pages
  - error: Repository errors
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Recipe, pagination.Meta, error) {
	filter.Category = normalize.Text(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)

	recipes, total, err := service.repository.List(context, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("recipe_service_list_failed: %w", err)
	}

	if recipes == nil {
		recipes = []*Recipe{}
	}

	return recipes, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// CategoryCounts returns the number of recipes per category.
func (service *Service) CategoryCounts(context context.Context) (*CategoryCounts, error) {
	counts, err := service.repository.CategoryCounts(context)
	if err != nil {
		return nil, fmt.Errorf("recipe_service_category_counts_failed: %w", err)
	}
	return counts, nil
}

// # Helpers

// publish emits an invalidation event. Failures never fail the mutation.
func (service *Service) publish(context context.Context, id string, action Action, category string) {
	if service.invalidator == nil {
		return
	}

	event := Event{RecipeID: id, Action: action, Category: category, OccurredAt: service.now().UTC()}
	if err := service.invalidator.Invalidate(context, event); err != nil {
		service.logger.Warn("recipe_invalidation_failed",
			slog.String("recipe_id", id),
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
	}
}

// clean normalises free text before validation. Blank and repeated image URLs are dropped.
func clean(draft Draft) Draft {
	draft.Title = normalize.Text(draft.Title)
	draft.Category = normalize.Text(draft.Category)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Ingredients = slice.Map(draft.Ingredients, func(ingredient Ingredient) Ingredient {
		ingredient.Name = normalize.Text(ingredient.Name)
		ingredient.Amount = strings.TrimSpace(ingredient.Amount)
		ingredient.Unit = strings.TrimSpace(ingredient.Unit)
		return ingredient
	})
	draft.Instructions = slice.Map(draft.Instructions, func(step Instruction) Instruction {
		step.Instruction = strings.TrimSpace(step.Instruction)
		return step
	})
	draft.Images = slice.Compact(slice.Map(draft.Images, strings.TrimSpace))
	return draft
}
