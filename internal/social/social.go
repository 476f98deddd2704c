// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social manages how cooks engage with recipes.

Architecture:

  - Favorites: A per-user bookmark toggled on and off.
  - Ratings: One 1..5 score (with optional comment) per user and recipe;
    resubmitting overwrites the previous one.

Both relations carry a unique (user, recipe) key in PostgreSQL, which is what
keeps concurrent duplicate requests from creating a second row.
*/
package social

import (
	"context"
	"time"

	"github.com/taibuivan/cookbook/internal/recipe"
)

// # Domain Entities

// Favorite is a user's bookmark of a recipe.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating is a user's review of a recipe.
type Rating struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	RecipeID  string         `json:"recipe_id"`
	Rating    int            `json:"rating"`
	Comment   *string        `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	User      *recipe.Author `json:"user,omitempty"`
}

// RateInput is the rating form.
type RateInput struct {
	Rating  int     `json:"rating" validate:"min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// # Field Identifiers

const (
	FieldFavorited = "favorited"
	FieldRating    = "rating"
	FieldComment   = "comment"
)

// # Repository Contracts

// Repository defines the persistence contract for favorites and ratings.
type Repository interface {
	// RemoveFavorite deletes the (userID, recipeID) favorite and reports whether one existed.
	RemoveFavorite(context context.Context, userID, recipeID string) (bool, error)

	/*
		AddFavorite inserts a favorite.

		Parameters:
		  - context: context.Context
		  - favorite: *Favorite

		Returns:
		  - error: Driver errors are returned unmapped so callers can classify
		    unique (23505) and foreign key (23503) violations
	*/
	AddFavorite(context context.Context, favorite *Favorite) error

	/*
		UpsertRating inserts or overwrites the (UserID, RecipeID) rating in one statement.

		Parameters:
		  - context: context.Context
		  - rating: *Rating (ID and timestamps are replaced by the stored values)

		Returns:
		  - bool: true when a new row was created
		  - error: Driver errors, unmapped
	*/
	UpsertRating(context context.Context, rating *Rating) (bool, error)
}
