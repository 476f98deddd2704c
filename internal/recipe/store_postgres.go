// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/database/schema"
)

// # PostgreSQL Repository

// PostgresRepository implements the [Repository] interface using pgx.
//
// Every read is a single round-trip:
//   - JSON Aggregation: Ratings and their authors are folded into one JSON column.
//   - Lateral Joins: Rating count and average are computed per row without N+1 queries.
//   - Window Functions: COUNT(*) OVER() returns the total match count with the page.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed recipe store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// likeEscaper neutralises LIKE wildcards in user search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// # Query Fragments

// selectColumns returns the projection shared by List and FindByID.
//
// ratingsJSON is the json_build_object expression aggregated per rating row.
// extra is appended to the select list as-is.
func selectColumns(ratingsJSON, ratingsOrder, extra string) string {
	recipe, account, rating, favorite := schema.CoreRecipe, schema.UserAccount, schema.SocialRating, schema.SocialFavorite

	return fmt.Sprintf(`
		SELECT
			r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
			r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
			u.%s, u.%s, u.%s,
			rs.ratings, rs.rating_count, rs.average_rating,
			(SELECT COUNT(*) FROM %s f WHERE f.%s = r.%s) AS favorite_count%s`,
		recipe.ID, recipe.Title, recipe.Description, recipe.Ingredients, recipe.Instructions, recipe.Images, recipe.PrepTime,
		recipe.CookTime, recipe.Servings, recipe.Difficulty, recipe.Category, recipe.UserID, recipe.CreatedAt, recipe.UpdatedAt,
		account.ID, account.Name, account.Image,
		favorite.Table, favorite.RecipeID, recipe.ID, extra,
	) + fmt.Sprintf(`
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		LEFT JOIN LATERAL (
			SELECT
				COALESCE(json_agg(%s ORDER BY %s), '[]') AS ratings,
				COUNT(*) AS rating_count,
				COALESCE(AVG(rt.%s), 0)::float8 AS average_rating
			FROM %s rt
			LEFT JOIN %s ra ON ra.%s = rt.%s
			WHERE rt.%s = r.%s
		) rs ON TRUE`,
		recipe.Table,
		account.Table, account.ID, recipe.UserID,
		ratingsJSON, ratingsOrder,
		rating.Rating,
		rating.Table,
		account.Table, account.ID, rating.UserID,
		rating.RecipeID, recipe.ID,
	)
}

// listRatingsJSON carries only the score for listing cards.
var listRatingsJSON = fmt.Sprintf(`json_build_object('rating', rt.%s)`, schema.SocialRating.Rating)

// detailRatingsJSON carries the full review with its author.
var detailRatingsJSON = fmt.Sprintf(`json_build_object(
					'id', rt.%s, 'rating', rt.%s, 'comment', rt.%s,
					'created_at', rt.%s, 'updated_at', rt.%s,
					'user', json_build_object('id', ra.%s, 'name', ra.%s, 'image', ra.%s))`,
	schema.SocialRating.ID, schema.SocialRating.Rating, schema.SocialRating.Comment,
	schema.SocialRating.CreatedAt, schema.SocialRating.UpdatedAt,
	schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Image,
)

var ratingsNewestFirst = fmt.Sprintf("rt.%s DESC, rt.%s DESC", schema.SocialRating.CreatedAt, schema.SocialRating.ID)

// filterClause renders the WHERE conditions for filter starting at placeholder argID.
func filterClause(filter Filter, argID int) (string, []any, int) {
	var clause strings.Builder
	var args []any

	clause.WriteString(" WHERE 1=1")

	// Category Filtering
	if filter.Category != "" {
		clause.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	// Difficulty Filtering
	if filter.Difficulty != "" {
		clause.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.Difficulty, argID))
		args = append(args, string(filter.Difficulty))
		argID++
	}

	// Search Query Filtering
	if filter.Search != "" {
		clause.WriteString(fmt.Sprintf(` AND (r.%s ILIKE $%d ESCAPE '\' OR r.%s ILIKE $%d ESCAPE '\')`,
			schema.CoreRecipe.Title, argID, schema.CoreRecipe.Description, argID))
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		argID++
	}

	// Owner Filtering
	if filter.OwnerID != "" {
		clause.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.UserID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	// Favorites Filtering
	if filter.FavoritedBy != "" {
		clause.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s fb WHERE fb.%s = r.%s AND fb.%s = $%d)",
			schema.SocialFavorite.Table, schema.SocialFavorite.RecipeID, schema.CoreRecipe.ID, schema.SocialFavorite.UserID, argID))
		args = append(args, filter.FavoritedBy)
		argID++
	}

	return clause.String(), args, argID
}

// scanRecipe hydrates a recipe from a row selected with [selectColumns].
//
// extra receives any trailing columns (e.g. the window total).
func scanRecipe(row pgx.Row, extra ...any) (*Recipe, error) {
	recipe := &Recipe{User: &Author{}}

	var ingredients, instructions, images string
	var ratingsJSON []byte

	dest := []any{
		&recipe.ID,
		&recipe.Title,
		&recipe.Description,
		&ingredients,
		&instructions,
		&images,
		&recipe.PrepTime,
		&recipe.CookTime,
		&recipe.Servings,
		&recipe.Difficulty,
		&recipe.Category,
		&recipe.UserID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
		&recipe.User.ID,
		&recipe.User.Name,
		&recipe.User.Image,
		&ratingsJSON,
		&recipe.RatingCount,
		&recipe.AverageRating,
		&recipe.FavoriteCount,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	recipe.Ingredients = DecodeList[Ingredient](ingredients)
	recipe.Instructions = DecodeList[Instruction](instructions)
	recipe.Images = DecodeList[string](images)

	recipe.Ratings = []Rating{}
	if err := json.Unmarshal(ratingsJSON, &recipe.Ratings); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}

	return recipe, nil
}

// # Recipe Repository Implementation

/*
Create persists a new recipe into core.recipe.

Parameters:
  - context: context.Context
  - recipe: *Recipe

Returns:
  - error: Constraint violations or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, recipe *Recipe) error {
	ingredients, instructions, images, err := encodeArrays(recipe)
	if err != nil {
		return err
	}

	columns := schema.CoreRecipe.Columns()
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		schema.CoreRecipe.Table, strings.Join(columns, ", "),
	)

	_, err = repository.pool.Exec(context, query,
		recipe.ID,
		recipe.Title,
		recipe.Description,
		ingredients,
		instructions,
		images,
		recipe.PrepTime,
		recipe.CookTime,
		recipe.Servings,
		string(recipe.Difficulty),
		recipe.Category,
		recipe.UserID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_recipe_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Recipe, error) {
	query := selectColumns(detailRatingsJSON, ratingsNewestFirst, "") +
		fmt.Sprintf(" WHERE r.%s = $1", schema.CoreRecipe.ID)

	recipe, err := scanRecipe(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Recipe")
		}
		return nil, fmt.Errorf("postgres_recipe_repo_find_by_id_failed: %w", err)
	}

	return recipe, nil
}

// FindOwnerID implements [Repository].
func (repository *PostgresRepository) FindOwnerID(context context.Context, id string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreRecipe.UserID, schema.CoreRecipe.Table, schema.CoreRecipe.ID)

	var ownerID string
	if err := repository.pool.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Recipe")
		}
		return "", fmt.Errorf("postgres_recipe_repo_find_owner_failed: %w", err)
	}

	return ownerID, nil
}

/*
Update replaces the editable columns of a recipe.

Parameters:
  - context: context.Context
  - recipe: *Recipe (Merged entity)

Returns:
  - error: apperr.NotFound when the row vanished, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, recipe *Recipe) error {
	ingredients, instructions, images, err := encodeArrays(recipe)
	if err != nil {
		return err
	}

	table := schema.CoreRecipe
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		    %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12
		WHERE %s = $1`,
		table.Table,
		table.Title, table.Description, table.Ingredients, table.Instructions, table.Images,
		table.PrepTime, table.CookTime, table.Servings, table.Difficulty, table.Category, table.UpdatedAt,
		table.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		recipe.ID,
		recipe.Title,
		recipe.Description,
		ingredients,
		instructions,
		images,
		recipe.PrepTime,
		recipe.CookTime,
		recipe.Servings,
		string(recipe.Difficulty),
		recipe.Category,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_recipe_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Recipe")
	}

	return nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipe.Table, schema.CoreRecipe.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_recipe_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Recipe")
	}

	return nil
}

/*
List returns a filtered, paginated slice of recipes and the total count.

Description: The total comes from COUNT(*) OVER() on the page itself. A page
past the end has no rows to carry it, so a separate COUNT runs in that case.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Recipe: Page items
  - int: Total matches
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	where, args, argID := filterClause(filter, 1)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectColumns(listRatingsJSON, ratingsNewestFirst, ", COUNT(*) OVER() AS total_count"))
	queryBuilder.WriteString(where)

	// Newest first, ID as a stable tie-break
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC, r.%s DESC", schema.CoreRecipe.CreatedAt, schema.CoreRecipe.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_list_failed: %w", err)
	}
	defer rows.Close()

	recipes := []*Recipe{}
	var total int

	for rows.Next() {
		recipe, err := scanRecipe(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_recipe_repo_list_scan_failed: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_recipe_repo_list_rows_failed: %w", err)
	}

	if len(recipes) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s r`, schema.CoreRecipe.Table) + where
		countArgs := args[:len(args)-2]
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("postgres_recipe_repo_count_failed: %w", err)
		}
	}

	return recipes, total, nil
}

/*
CategoryCounts groups recipes by category.

Returns:
  - *CategoryCounts: Per-category totals (largest first in SQL), overall total
    and number of non-empty categories
  - error: Execution errors
*/
func (repository *PostgresRepository) CategoryCounts(context context.Context) (*CategoryCounts, error) {
	table := schema.CoreRecipe
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS recipe_count
		FROM %s
		WHERE %s <> ''
		GROUP BY %s
		ORDER BY recipe_count DESC, %s ASC`,
		table.Category, table.Table, table.Category, table.Category, table.Category,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_category_counts_failed: %w", err)
	}
	defer rows.Close()

	counts := &CategoryCounts{Counts: map[string]int{}}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("postgres_recipe_repo_category_counts_scan_failed: %w", err)
		}
		counts.Counts[category] = count
		counts.Categories++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_category_counts_rows_failed: %w", err)
	}

	totalQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table.Table)
	if err := repository.pool.QueryRow(context, totalQuery).Scan(&counts.Total); err != nil {
		return nil, fmt.Errorf("postgres_recipe_repo_total_failed: %w", err)
	}

	return counts, nil
}

// # Helpers

func encodeArrays(recipe *Recipe) (ingredients, instructions, images string, err error) {
	if ingredients, err = EncodeList(recipe.Ingredients); err != nil {
		return
	}
	if instructions, err = EncodeList(recipe.Instructions); err != nil {
		return
	}
	images, err = EncodeList(recipe.Images)
	return
}
