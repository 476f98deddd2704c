// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/ctxutil"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/recipe"
	"github.com/taibuivan/cookbook/internal/social"
	"github.com/taibuivan/cookbook/pkg/pointer"
)

const (
	pancakesID = "0190f5a2-0000-7000-8000-0000000000f1"
	cookID     = "0190f5a2-0000-7000-8000-00000000000c"
)

type pair struct{ userID, recipeID string }

// memoryEngagement is an in-memory social.Repository that enforces the same
// unique and foreign keys as the database.
type memoryEngagement struct {
	mu        sync.Mutex
	recipes   map[string]bool
	favorites map[pair]social.Favorite
	ratings   map[pair]social.Rating
}

func newMemoryEngagement(recipeIDs ...string) *memoryEngagement {
	store := &memoryEngagement{
		recipes:   map[string]bool{},
		favorites: map[pair]social.Favorite{},
		ratings:   map[pair]social.Rating{},
	}
	for _, id := range recipeIDs {
		store.recipes[id] = true
	}
	return store
}

func (store *memoryEngagement) RemoveFavorite(_ context.Context, userID, recipeID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := pair{userID, recipeID}
	_, ok := store.favorites[key]
	delete(store.favorites, key)
	return ok, nil
}

func (store *memoryEngagement) AddFavorite(_ context.Context, favorite *social.Favorite) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.recipes[favorite.RecipeID] {
		return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	}
	key := pair{favorite.UserID, favorite.RecipeID}
	if _, ok := store.favorites[key]; ok {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	store.favorites[key] = *favorite
	return nil
}

func (store *memoryEngagement) UpsertRating(_ context.Context, rating *social.Rating) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.recipes[rating.RecipeID] {
		return false, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	}

	key := pair{rating.UserID, rating.RecipeID}
	existing, found := store.ratings[key]
	if found {
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
	} else {
		rating.CreatedAt = rating.UpdatedAt
	}
	rating.User = &recipe.Author{ID: rating.UserID, Name: pointer.To("Julia")}
	store.ratings[key] = *rating
	return !found, nil
}

func newService(store social.Repository) *social.Service {
	return social.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_ToggleFavorite flips state and absorbs concurrent duplicates.
*/
func TestService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle_round_trip", func(t *testing.T) {
		store := newMemoryEngagement(pancakesID)
		service := newService(store)

		for _, want := range []bool{true, false, true} {
			favorited, err := service.ToggleFavorite(ctx, cookID, pancakesID)
			require.NoError(t, err)
			assert.Equal(t, want, favorited)
		}
		assert.Len(t, store.favorites, 1)
	})

	t.Run("unknown_recipe", func(t *testing.T) {
		service := newService(newMemoryEngagement())

		_, err := service.ToggleFavorite(ctx, cookID, pancakesID)
		assert.True(t, apperr.IsNotFound(err), "got %v", err)
	})

	t.Run("concurrent_toggles_keep_one_row", func(t *testing.T) {
		store := newMemoryEngagement(pancakesID)
		service := newService(store)

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.ToggleFavorite(ctx, cookID, pancakesID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		assert.LessOrEqual(t, len(store.favorites), 1)
	})
}

/*
TestService_Rate covers creation, overwrite and validation.
*/
func TestService_Rate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryEngagement(pancakesID)
	service := newService(store)

	first, created, err := service.Rate(ctx, cookID, pancakesID, social.RateInput{Rating: 4, Comment: pointer.To("  Tasty  ")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Tasty", pointer.Val(first.Comment))
	assert.Equal(t, cookID, first.User.ID)

	second, created, err := service.Rate(ctx, cookID, pancakesID, social.RateInput{Rating: 5, Comment: pointer.To("")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "overwrite keeps the row")
	assert.Equal(t, 5, second.Rating)
	assert.Nil(t, second.Comment)
	assert.Len(t, store.ratings, 1)

	tests := []struct {
		name      string
		recipeID  string
		input     social.RateInput
		wantCode  string
		wantField string
	}{
		{"zero", pancakesID, social.RateInput{Rating: 0}, apperr.CodeValidation, "rating"},
		{"six", pancakesID, social.RateInput{Rating: 6}, apperr.CodeValidation, "rating"},
		{"long_comment", pancakesID, social.RateInput{Rating: 3, Comment: pointer.To(strings.Repeat("x", 1001))}, apperr.CodeValidation, "comment"},
		{"unknown_recipe", "0190f5a2-0000-7000-8000-0000000000ff", social.RateInput{Rating: 3}, apperr.CodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Rate(ctx, cookID, tt.recipeID, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr, "got %v", err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantField != "" {
				require.NotEmpty(t, appErr.Details)
				assert.Equal(t, tt.wantField, appErr.Details[0].Field)
			}
		})
	}
}

/*
TestHandler_Engagement checks status codes of the mounted endpoints.
*/
func TestHandler_Engagement(t *testing.T) {
	recipeID := "0190f5a2-0000-7000-8000-0000000000aa"
	store := newMemoryEngagement(recipeID)

	router := chi.NewRouter()
	social.NewHandler(newService(store)).Register(router)

	serve := func(path, body string, signedIn bool) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		if signedIn {
			claims := &sec.AuthClaims{UserID: cookID, Role: string(sec.RoleMember)}
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	tests := []struct {
		name       string
		path       string
		body       string
		signedIn   bool
		wantStatus int
		wantBody   string
	}{
		{"favorite_anonymous", "/" + recipeID + "/favorite", "", false, http.StatusUnauthorized, ""},
		{"favorite_on", "/" + recipeID + "/favorite", "", true, http.StatusOK, `{"data":{"favorited":true}}`},
		{"favorite_off", "/" + recipeID + "/favorite", "", true, http.StatusOK, `{"data":{"favorited":false}}`},
		{"favorite_bad_id", "/pancakes/favorite", "", true, http.StatusNotFound, ""},
		{"rate_created", "/" + recipeID + "/rating", `{"rating":4}`, true, http.StatusCreated, ""},
		{"rate_replaced", "/" + recipeID + "/rating", `{"rating":2,"comment":"Too sweet"}`, true, http.StatusOK, ""},
		{"rate_invalid", "/" + recipeID + "/rating", `{"rating":9}`, true, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(tt.path, tt.body, tt.signedIn)
			assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
