// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/recipe"
)

// memoryRecipes is an in-memory recipe.Repository.
type memoryRecipes struct {
	rows map[string]recipe.Recipe
}

func newMemoryRecipes() *memoryRecipes {
	return &memoryRecipes{rows: map[string]recipe.Recipe{}}
}

func (store *memoryRecipes) hydrate(row recipe.Recipe) *recipe.Recipe {
	row.User = &recipe.Author{ID: row.UserID}
	if row.Ratings == nil {
		row.Ratings = []recipe.Rating{}
	}
	return &row
}

func (store *memoryRecipes) Create(_ context.Context, r *recipe.Recipe) error {
	store.rows[r.ID] = *r
	return nil
}

func (store *memoryRecipes) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	row, ok := store.rows[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}
	return store.hydrate(row), nil
}

func (store *memoryRecipes) FindOwnerID(_ context.Context, id string) (string, error) {
	row, ok := store.rows[id]
	if !ok {
		return "", apperr.NotFound("Recipe")
	}
	return row.UserID, nil
}

func (store *memoryRecipes) Update(_ context.Context, r *recipe.Recipe) error {
	if _, ok := store.rows[r.ID]; !ok {
		return apperr.NotFound("Recipe")
	}
	store.rows[r.ID] = *r
	return nil
}

func (store *memoryRecipes) Delete(_ context.Context, id string) error {
	if _, ok := store.rows[id]; !ok {
		return apperr.NotFound("Recipe")
	}
	delete(store.rows, id)
	return nil
}

func (store *memoryRecipes) List(_ context.Context, filter recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	var matches []recipe.Recipe
	search := strings.ToLower(filter.Search)

	for _, row := range store.rows {
		if filter.Category != "" && row.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && row.Difficulty != filter.Difficulty {
			continue
		}
		if filter.OwnerID != "" && row.UserID != filter.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.Title), search) &&
			!strings.Contains(strings.ToLower(row.Description), search) {
			continue
		}
		matches = append(matches, row)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	page := []*recipe.Recipe{}
	for index := offset; index < len(matches) && index < offset+limit; index++ {
		page = append(page, store.hydrate(matches[index]))
	}
	return page, len(matches), nil
}

func (store *memoryRecipes) CategoryCounts(_ context.Context) (*recipe.CategoryCounts, error) {
	counts := &recipe.CategoryCounts{Counts: map[string]int{}}
	for _, row := range store.rows {
		counts.Total++
		if row.Category == "" {
			continue
		}
		if counts.Counts[row.Category] == 0 {
			counts.Categories++
		}
		counts.Counts[row.Category]++
	}
	return counts, nil
}

// recordingInvalidator captures published events and optionally fails.
type recordingInvalidator struct {
	events []recipe.Event
	fail   bool
}

func (invalidator *recordingInvalidator) Invalidate(_ context.Context, event recipe.Event) error {
	invalidator.events = append(invalidator.events, event)
	if invalidator.fail {
		return errors.New("redis: connection refused")
	}
	return nil
}

func (invalidator *recordingInvalidator) actions() []recipe.Action {
	actions := make([]recipe.Action, 0, len(invalidator.events))
	for _, event := range invalidator.events {
		actions = append(actions, event.Action)
	}
	return actions
}

// fixture wires a Service over in-memory fakes with a clock that ticks one
// minute per reading, so creation order is deterministic.
type fixture struct {
	service     *recipe.Service
	store       *memoryRecipes
	invalidator *recordingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemoryRecipes()
	invalidator := &recordingInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	current := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	service := recipe.NewService(store, invalidator, logger).WithClock(clock)
	return &fixture{service: service, store: store, invalidator: invalidator}
}

// validDraft returns a draft that passes validation.
func validDraft(title string) recipe.Draft {
	return recipe.Draft{
		Title:        title,
		Description:  "Fluffy and quick.",
		Ingredients:  []recipe.Ingredient{{Name: "Flour", Amount: "200", Unit: "g"}},
		Instructions: []recipe.Instruction{{Step: 1, Instruction: "Mix and fry."}},
		Images:       []string{"https://img.example/pancakes.jpg"},
		PrepTime:     10,
		CookTime:     15,
		Servings:     4,
		Difficulty:   recipe.DifficultyEasy,
		Category:     "Breakfast",
	}
}
