// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/postgres/pgtest"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/recipe"
	"github.com/taibuivan/cookbook/internal/social"
	"github.com/taibuivan/cookbook/internal/users/account"
	"github.com/taibuivan/cookbook/internal/users/auth"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

// # Seeding

type seeder struct {
	t       *testing.T
	ctx     context.Context
	users   *auth.PostgresUserRepository
	recipes *recipe.PostgresRepository
	social  *social.PostgresRepository
}

func (s *seeder) user(prefix string) string {
	s.t.Helper()
	user := &auth.User{ID: uuid.New(), Email: pgtest.Email(prefix), Role: sec.RoleMember}
	require.NoError(s.t, s.users.Create(s.ctx, user))
	return user.ID
}

func (s *seeder) recipe(ownerID, title string) string {
	s.t.Helper()
	now := time.Now()
	item := &recipe.Recipe{
		ID:           uuid.New(),
		Title:        title,
		Description:  "Seeded for the deletion cascade",
		Ingredients:  []recipe.Ingredient{{Name: "Flour", Amount: "200", Unit: "g"}},
		Instructions: []recipe.Instruction{{Step: 1, Instruction: "Mix"}},
		Images:       []string{},
		PrepTime:     5,
		CookTime:     10,
		Servings:     2,
		Difficulty:   recipe.DifficultyEasy,
		Category:     "Baking",
		UserID:       ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(s.t, s.recipes.Create(s.ctx, item))
	return item.ID
}

func (s *seeder) rate(userID, recipeID string, score int) {
	s.t.Helper()
	_, err := s.social.UpsertRating(s.ctx, &social.Rating{
		ID: uuid.New(), UserID: userID, RecipeID: recipeID, Rating: score, UpdatedAt: time.Now(),
	})
	require.NoError(s.t, err)
}

func (s *seeder) favorite(userID, recipeID string) {
	s.t.Helper()
	require.NoError(s.t, s.social.AddFavorite(s.ctx, &social.Favorite{
		ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: time.Now(),
	}))
}

func count(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

/*
TestPostgresAccountRepository_Delete removes everything the user owns, including
engagement other users left on the user's recipes.
*/
func TestPostgresAccountRepository_Delete(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()

	s := &seeder{
		t:       t,
		ctx:     ctx,
		users:   auth.NewUserRepository(pool),
		recipes: recipe.NewRepository(pool),
		social:  social.NewRepository(pool),
	}

	julia := s.user("julia")
	bob := s.user("bob")

	pancakes := s.recipe(julia, "Pancakes")
	waffles := s.recipe(julia, "Waffles")
	sourdough := s.recipe(bob, "Sourdough")

	// Julia: 2 recipes, 3 ratings, 1 favorite.
	s.rate(julia, pancakes, 5)
	s.rate(julia, waffles, 4)
	s.rate(julia, sourdough, 3)
	s.favorite(julia, sourdough)

	// Bob engages with Julia's recipes and his own.
	s.rate(bob, pancakes, 4)
	s.favorite(bob, waffles)
	s.favorite(bob, sourdough)

	repository := account.NewAccountRepository(pool)

	counts, err := repository.Counts(ctx, julia)
	require.NoError(t, err)
	assert.Equal(t, account.ProfileCounts{Recipes: 2, Favorites: 1, Ratings: 3}, counts)

	require.NoError(t, repository.Delete(ctx, julia))

	_, err = repository.FindByID(ctx, julia)
	assert.True(t, apperr.IsNotFound(err))

	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM core.recipe WHERE userid = $1`, julia))
	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM social.rating WHERE userid = $1`, julia))
	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM social.favorite WHERE userid = $1`, julia))
	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM users.session WHERE userid = $1`, julia))

	// Bob's engagement on the removed recipes went with them.
	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM social.rating WHERE recipeid::text = ANY($1)`, []string{pancakes, waffles}))
	assert.Zero(t, count(t, pool, `SELECT COUNT(*) FROM social.favorite WHERE recipeid::text = ANY($1)`, []string{pancakes, waffles}))

	// Bob's own recipe and favorite survive.
	assert.Equal(t, 1, count(t, pool, `SELECT COUNT(*) FROM core.recipe WHERE id = $1`, sourdough))
	assert.Equal(t, 1, count(t, pool, `SELECT COUNT(*) FROM social.favorite WHERE userid = $1`, bob))

	err = repository.Delete(ctx, julia)
	assert.True(t, apperr.IsNotFound(err))
}
