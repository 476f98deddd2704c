// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import "context"

// # Repository Contracts

// Repository defines the persistence contract for recipes.
type Repository interface {
	/*
		Create persists a new recipe.

		Parameters:
		  - context: context.Context
		  - recipe: *Recipe (ID, owner and timestamps already set)

		Returns:
		  - error: Constraint violations or execution failures
	*/
	Create(context context.Context, recipe *Recipe) error

	/*
		FindByID loads a recipe with its owner, ratings and favorite count.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Recipe: Hydrated aggregate, ratings newest first
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*Recipe, error)

	// FindOwnerID returns the owner of recipe id, or apperr.NotFound.
	FindOwnerID(context context.Context, id string) (string, error)

	// Update replaces the editable fields and updatedat of recipe.
	Update(context context.Context, recipe *Recipe) error

	// Delete removes the recipe. Ratings and favorites cascade.
	Delete(context context.Context, id string) error

	/*
		List returns one page of recipes matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Recipe: Page items with owner, rating scores and favorite count
		  - int: Total matches across all pages
		  - error: Execution failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error)

	// CategoryCounts groups the catalogue by category, largest first.
	CategoryCounts(context context.Context) (*CategoryCounts, error)
}
