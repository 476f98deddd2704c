// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/database/schema"
)

// # Row Mapping

// UserColumns is the SELECT list matching [ScanUser].
var UserColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// ScanUser hydrates a [User] from a row selected with [UserColumns].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.Image,
		&user.Bio,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress, schema.UserSession.ExpiresAt,
		schema.UserSession.IsRevoked, schema.UserSession.CreatedAt,
	)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash retrieves an active session by its unique token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()`,
		strings.Join(schema.UserSession.Columns(), ", "),
		schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.IPAddress,
		&session.UserAgent,
		&session.IsRevoked,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

// Revoke marks a specific session as revoked.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.ID)

	if _, err := repository.pool.Exec(context, query, sessionID); err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	return nil
}

/*
DeleteExpired permanently removes all sessions that have passed their expiration.

Parameters:
  - context: context.Context

Returns:
  - int64: Removed rows
  - error: Cleanup failures
*/
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s <= NOW()`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt)

	tag, err := repository.pool.Exec(context, query)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// # Verification Token Repository

// PostgresVerificationTokenRepository implements VerificationTokenRepository.
type PostgresVerificationTokenRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new PostgreSQL implementation of VerificationTokenRepository.
func NewVerificationTokenRepository(pool *pgxpool.Pool) *PostgresVerificationTokenRepository {
	return &PostgresVerificationTokenRepository{pool: pool}
}

// Create inserts a freshly issued token.
func (repository *PostgresVerificationTokenRepository) Create(context context.Context, token *VerificationToken) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.UserVerificationToken.Table,
		schema.UserVerificationToken.Identifier, schema.UserVerificationToken.Token,
		schema.UserVerificationToken.Expires, schema.UserVerificationToken.CreatedAt,
	)

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		token.Identifier, token.Token, token.Expires, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_verification_token_repo_create_failed: %w", err)
	}
	return nil
}

/*
Redeem deletes the matching row and stamps the account in a single statement.

Concurrent redeems of the same token race on the DELETE; exactly one observes the
row. The UPDATE only runs when the claimed row is still live at verifiedAt.

Parameters:
  - context: context.Context
  - identifier: string
  - token: string
  - verifiedAt: time.Time

Returns:
  - Redemption: Expiry of the removed row and whether an account was stamped
  - error: apperr.NotFound or database failures
*/
func (repository *PostgresVerificationTokenRepository) Redeem(context context.Context, identifier, token string, verifiedAt time.Time) (Redemption, error) {
	query := fmt.Sprintf(`
		WITH claimed AS (
			DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s
		), stamped AS (
			UPDATE %s SET %s = $3, %s = $3
			WHERE %s = $1 AND EXISTS (SELECT 1 FROM claimed WHERE %s >= $3)
			RETURNING %s
		)
		SELECT claimed.%s, EXISTS (SELECT 1 FROM stamped) FROM claimed`,
		schema.UserVerificationToken.Table,
		schema.UserVerificationToken.Identifier, schema.UserVerificationToken.Token,
		schema.UserVerificationToken.Expires,
		schema.UserAccount.Table, schema.UserAccount.EmailVerified, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Email, schema.UserVerificationToken.Expires,
		schema.UserAccount.ID,
		schema.UserVerificationToken.Expires,
	)

	var redemption Redemption
	err := repository.pool.QueryRow(context, query, identifier, token, verifiedAt).
		Scan(&redemption.Expires, &redemption.Verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Redemption{}, apperr.NotFound("Verification token")
		}
		return Redemption{}, fmt.Errorf("postgres_verification_token_repo_redeem_failed: %w", err)
	}
	return redemption, nil
}

// DeleteExpired removes tokens that expired before cutoff.
func (repository *PostgresVerificationTokenRepository) DeleteExpired(context context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`,
		schema.UserVerificationToken.Table, schema.UserVerificationToken.Expires)

	tag, err := repository.pool.Exec(context, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("postgres_verification_token_repo_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
