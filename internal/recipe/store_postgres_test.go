// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/postgres/pgtest"
	"github.com/taibuivan/cookbook/internal/recipe"
)

/*
TestPostgresRepository_List exercises the filter SQL, wildcard escaping and the
total reported for pages past the end.
*/
func TestPostgresRepository_List(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()

	owner := pgtest.SeedUser(t, pool, "baker")
	fan := pgtest.SeedUser(t, pool, "fan")

	rye := pgtest.SeedRecipe(t, pool, owner, "50% Rye Bread", "Baking")
	pgtest.SeedRecipe(t, pool, owner, "500 Grain Bread", "Baking")
	pgtest.SeedRecipe(t, pool, owner, "Rye_Crackers", "Snacks")

	_, err := pool.Exec(ctx,
		`INSERT INTO social.favorite (id, userid, recipeid) VALUES (gen_random_uuid(), $1, $2)`, fan, rye)
	require.NoError(t, err)

	repository := recipe.NewRepository(pool)

	tests := []struct {
		name       string
		filter     recipe.Filter
		wantTotal  int
		wantTitles []string
	}{
		{"owner_only", recipe.Filter{OwnerID: owner}, 3, nil},
		{"percent_is_literal", recipe.Filter{OwnerID: owner, Search: "50%"}, 1, []string{"50% Rye Bread"}},
		{"underscore_is_literal", recipe.Filter{OwnerID: owner, Search: "_"}, 1, []string{"Rye_Crackers"}},
		{"case_insensitive_search", recipe.Filter{OwnerID: owner, Search: "BREAD", Category: "Baking"}, 2, nil},
		{"all_filters", recipe.Filter{
			OwnerID:     owner,
			Search:      "bread",
			Category:    "Baking",
			Difficulty:  recipe.DifficultyEasy,
			FavoritedBy: fan,
		}, 1, []string{"50% Rye Bread"}},
		{"no_match", recipe.Filter{OwnerID: owner, Difficulty: recipe.DifficultyHard}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repository.List(ctx, tt.filter, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, items, tt.wantTotal)

			if tt.wantTitles != nil {
				titles := []string{}
				for _, item := range items {
					titles = append(titles, item.Title)
				}
				assert.Equal(t, tt.wantTitles, titles)
			}
		})
	}

	t.Run("page_past_end_keeps_total", func(t *testing.T) {
		items, total, err := repository.List(ctx, recipe.Filter{OwnerID: owner}, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 3, total)
	})

	t.Run("favorite_count_and_empty_arrays", func(t *testing.T) {
		item, err := repository.FindByID(ctx, rye)
		require.NoError(t, err)
		assert.Equal(t, 1, item.FavoriteCount)
		assert.Empty(t, item.Ingredients)
		assert.Empty(t, item.Ratings)
	})
}
