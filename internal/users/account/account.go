// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the signed-in user's profile and credentials.

It lets a cook view and edit their public profile, rotate their password,
move their account to a new email address, and permanently delete the
account with everything it owns.

# Architecture

  - Entities: Profile (view model over [auth.User]).
  - Domain: This package depends on the auth package for the User entity.
  - Storage: Account deletion runs as a single PostgreSQL transaction.
*/
package account

import (
	"context"

	"github.com/taibuivan/cookbook/internal/users/auth"
)

// # Domain Entities

// ProfileCounts summarises a user's activity.
type ProfileCounts struct {
	Recipes   int `json:"recipes"`
	Favorites int `json:"favorites"`
	Ratings   int `json:"ratings"`
}

// Profile is the private view of the signed-in user.
type Profile struct {
	*auth.User
	Counts ProfileCounts `json:"counts"`
}

// # Error Codes

const (
	CodePasswordMismatch       = "PASSWORD_MISMATCH"
	CodeNoPasswordOnFile       = "NO_PASSWORD_ON_FILE"
	CodeInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"
	CodeEmailInUse             = "EMAIL_IN_USE"
)

// # Field Identifiers

const (
	FieldName            = "name"
	FieldBio             = "bio"
	FieldImage           = "image"
	FieldEmail           = "email"
	FieldNewEmail        = "new_email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// FindByEmail retrieves the account owning email, or apperr.NotFound.
	FindByEmail(context context.Context, email string) (*auth.User, error)

	// Counts returns recipe, favorite and rating totals for userID.
	Counts(context context.Context, userID string) (ProfileCounts, error)

	/*
		UpdateProfile persists name, bio and image.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateProfile(context context.Context, user *auth.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, userID, passwordHash string) error

	// UpdateEmail replaces the email address. A unique violation is returned as-is.
	UpdateEmail(context context.Context, userID, email string) error

	/*
		Delete removes the account and everything it owns in one transaction.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: apperr.NotFound when the account is already gone
	*/
	Delete(context context.Context, userID string) error
}
