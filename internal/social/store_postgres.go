// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cookbook/internal/platform/database/schema"
	"github.com/taibuivan/cookbook/internal/recipe"
)

// # PostgreSQL Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed engagement store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// RemoveFavorite implements [Repository].
func (repository *PostgresRepository) RemoveFavorite(context context.Context, userID, recipeID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialFavorite.Table, schema.SocialFavorite.UserID, schema.SocialFavorite.RecipeID)

	tag, err := repository.pool.Exec(context, query, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("postgres_favorite_repo_remove_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddFavorite implements [Repository].
func (repository *PostgresRepository) AddFavorite(context context.Context, favorite *Favorite) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.SocialFavorite.Table,
		schema.SocialFavorite.ID, schema.SocialFavorite.UserID,
		schema.SocialFavorite.RecipeID, schema.SocialFavorite.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query, favorite.ID, favorite.UserID, favorite.RecipeID, favorite.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_favorite_repo_add_failed: %w", err)
	}

	return nil
}

/*
UpsertRating inserts or overwrites a rating and attaches the author summary.

Description: (xmax = 0) is true only for a freshly inserted tuple, which
tells the caller whether ON CONFLICT took the update branch.

Parameters:
  - context: context.Context
  - rating: *Rating

Returns:
  - bool: true when created
  - error: Execution errors
*/
func (repository *PostgresRepository) UpsertRating(context context.Context, rating *Rating) (bool, error) {
	table, account := schema.SocialRating, schema.UserAccount

	query := fmt.Sprintf(`
		WITH upserted AS (
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (%s, %s) DO UPDATE
			SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
			RETURNING %s, %s, %s, (xmax = 0) AS inserted
		)
		SELECT up.%s, up.%s, up.%s, up.inserted, u.%s, u.%s, u.%s
		FROM upserted up
		JOIN %s u ON u.%s = $2`,
		table.Table,
		table.ID, table.UserID, table.RecipeID, table.Rating, table.Comment, table.CreatedAt, table.UpdatedAt,
		table.UserID, table.RecipeID,
		table.Rating, table.Rating, table.Comment, table.Comment, table.UpdatedAt, table.UpdatedAt,
		table.ID, table.CreatedAt, table.UpdatedAt,
		table.ID, table.CreatedAt, table.UpdatedAt, account.ID, account.Name, account.Image,
		account.Table, account.ID,
	)

	rating.User = &recipe.Author{}
	var created bool

	err := repository.pool.QueryRow(context, query,
		rating.ID,
		rating.UserID,
		rating.RecipeID,
		rating.Rating,
		rating.Comment,
		rating.UpdatedAt,
	).Scan(
		&rating.ID,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&created,
		&rating.User.ID,
		&rating.User.Name,
		&rating.User.Image,
	)
	if err != nil {
		return false, fmt.Errorf("postgres_rating_repo_upsert_failed: %w", err)
	}

	return created, nil
}
