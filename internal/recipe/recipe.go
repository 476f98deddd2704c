// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recipe defines the content entities of the CookBook catalogue.

It manages the lifecycle of user-owned recipes and the discovery queries
run over them.

Core Responsibility:

  - Ownership: A recipe has exactly one owner. Only the owner may change or remove it.
  - Structure: Ingredients, instructions and images are ordered sequences
    stored as JSON text and decoded with an empty fallback.
  - Discovery: Filtered, paginated listing and per-category counts.

Mutations publish an invalidation [Event] so downstream caches can drop stale copies.
*/
package recipe

import "time"

// # Domain Enums

// Difficulty is the effort level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid reports whether d is a recognised [Difficulty] value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// # Value Objects

// Ingredient is one line of the shopping list.
type Ingredient struct {
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount" validate:"required"`
	Unit   string `json:"unit" validate:"required"`
}

// Instruction is one numbered preparation step.
type Instruction struct {
	Step        int    `json:"step" validate:"min=1"`
	Instruction string `json:"instruction" validate:"required"`
}

// Author is the public summary of a user attached to recipes and ratings.
type Author struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// Rating is a review as shown on a recipe.
//
// Listings only carry the score; the detail view carries every field.
type Rating struct {
	ID        string     `json:"id,omitempty"`
	Rating    int        `json:"rating"`
	Comment   *string    `json:"comment,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	User      *Author    `json:"user,omitempty"`
}

// # Core Entities

// Recipe is the central aggregate of the catalogue.
type Recipe struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
	Images       []string      `json:"images"`
	PrepTime     int           `json:"prep_time"` // minutes
	CookTime     int           `json:"cook_time"` // minutes
	Servings     int           `json:"servings"`
	Difficulty   Difficulty    `json:"difficulty"`
	Category     string        `json:"category"`
	UserID       string        `json:"user_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// # Read Aggregates
	User          *Author  `json:"user,omitempty"`
	Ratings       []Rating `json:"ratings"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
	FavoriteCount int      `json:"favorite_count"`
}

// Draft returns the editable fields of r.
func (r *Recipe) Draft() Draft {
	return Draft{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Images:       r.Images,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Category:     r.Category,
	}
}

// apply copies draft onto r.
func (r *Recipe) apply(draft Draft) {
	r.Title = draft.Title
	r.Description = draft.Description
	r.Ingredients = draft.Ingredients
	r.Instructions = draft.Instructions
	r.Images = draft.Images
	r.PrepTime = draft.PrepTime
	r.CookTime = draft.CookTime
	r.Servings = draft.Servings
	r.Difficulty = draft.Difficulty
	r.Category = draft.Category
}

// # Inputs

// Draft is a complete recipe document as submitted by its owner.
type Draft struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Description  string        `json:"description" validate:"required,max=500"`
	Ingredients  []Ingredient  `json:"ingredients" validate:"min=1,dive"`
	Instructions []Instruction `json:"instructions" validate:"min=1,dive"`
	Images       []string      `json:"images" validate:"min=1,dive,required"`
	PrepTime     int           `json:"prep_time" validate:"min=1"`
	CookTime     int           `json:"cook_time" validate:"min=1"`
	Servings     int           `json:"servings" validate:"min=1"`
	Difficulty   Difficulty    `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Category     string        `json:"category" validate:"required"`
}

// Patch carries the fields a caller wants to replace. Nil fields are kept.
//
// Array fields are replaced wholesale, never merged element by element.
type Patch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
	Images       []string      `json:"images"`
	PrepTime     *int          `json:"prep_time"`
	CookTime     *int          `json:"cook_time"`
	Servings     *int          `json:"servings"`
	Difficulty   *Difficulty   `json:"difficulty"`
	Category     *string       `json:"category"`
}

// Merge overlays the provided fields of p onto base.
func (p Patch) Merge(base Draft) Draft {
	if p.Title != nil {
		base.Title = *p.Title
	}
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.Ingredients != nil {
		base.Ingredients = p.Ingredients
	}
	if p.Instructions != nil {
		base.Instructions = p.Instructions
	}
	if p.Images != nil {
		base.Images = p.Images
	}
	if p.PrepTime != nil {
		base.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		base.CookTime = *p.CookTime
	}
	if p.Servings != nil {
		base.Servings = *p.Servings
	}
	if p.Difficulty != nil {
		base.Difficulty = *p.Difficulty
	}
	if p.Category != nil {
		base.Category = *p.Category
	}
	return base
}

// # Discovery

// DefaultPageSize is the listing page size when the caller gives none.
const DefaultPageSize = 12

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Category    string
	Difficulty  Difficulty
	Search      string // case-insensitive substring of title or description
	OwnerID     string // recipes created by this user
	FavoritedBy string // recipes this user has favorited
}

// CategoryCounts reports how many recipes each category holds.
//
// Categories without recipes are absent from Counts.
type CategoryCounts struct {
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	Categories int            `json:"categories"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldCategory   = "category"
	FieldDifficulty = "difficulty"
	FieldSearch     = "search"
)
