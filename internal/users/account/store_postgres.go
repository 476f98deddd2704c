// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/database/schema"
	"github.com/taibuivan/cookbook/internal/platform/postgres"
	"github.com/taibuivan/cookbook/internal/users/auth"
)

// # Repository Implementation

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves the account owning email.
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
Counts aggregates the user's recipes, favorites and ratings in one round trip.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - ProfileCounts: Activity totals
  - error: Database failures
*/
func (repository *PostgresAccountRepository) Counts(context context.Context, userID string) (ProfileCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $1)`,
		schema.CoreRecipe.Table, schema.CoreRecipe.UserID,
		schema.SocialFavorite.Table, schema.SocialFavorite.UserID,
		schema.SocialRating.Table, schema.SocialRating.UserID,
	)

	var counts ProfileCounts
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&counts.Recipes,
		&counts.Favorites,
		&counts.Ratings,
	)
	if err != nil {
		return ProfileCounts{}, fmt.Errorf("postgres_account_repo_counts_failed: %w", err)
	}

	return counts, nil
}

/*
UpdateProfile modifies the mutable profile metadata of a user.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Bio, schema.UserAccount.Image,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	user.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Bio,
		user.Image,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}

// UpdateEmail replaces the email address.
func (repository *PostgresAccountRepository) UpdateEmail(context context.Context, userID, email string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Email,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, email, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_email_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}

/*
Delete removes the account and every row it owns.

Description: Runs in one transaction. Ratings and favorites left by other
users on this user's recipes go with the recipes. Pending verification tokens
for the address are dropped as well since they are not linked by foreign key.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or database failures
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, userID string) error {
	recipesOfUser := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreRecipe.ID, schema.CoreRecipe.Table, schema.CoreRecipe.UserID)

	statements := []string{
		// Engagement by the user
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialRating.Table, schema.SocialRating.UserID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialFavorite.Table, schema.SocialFavorite.UserID),

		// Engagement by others on the user's recipes
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`, schema.SocialRating.Table, schema.SocialRating.RecipeID, recipesOfUser),
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`, schema.SocialFavorite.Table, schema.SocialFavorite.RecipeID, recipesOfUser),

		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipe.Table, schema.CoreRecipe.UserID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSession.Table, schema.UserSession.UserID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserIdentity.Table, schema.UserIdentity.UserID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = (SELECT %s FROM %s WHERE %s = $1)`,
			schema.UserVerificationToken.Table, schema.UserVerificationToken.Identifier,
			schema.UserAccount.Email, schema.UserAccount.Table, schema.UserAccount.ID),
	}

	return postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		for _, statement := range statements {
			if _, err := transaction.Exec(context, statement, userID); err != nil {
				return fmt.Errorf("postgres_account_repo_delete_owned_failed: %w", err)
			}
		}

		tag, err := transaction.Exec(context,
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID),
			userID,
		)
		if err != nil {
			return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Account")
		}
		return nil
	})
}
