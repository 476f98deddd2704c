// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (unique violation on duplicate email)
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	// Create persists a new tracking session for an authenticated login.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the active session matching the given token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(context context.Context, sessionID string) error

	// DeleteExpired physically removes sessions whose ExpiresAt is in the past.
	DeleteExpired(context context.Context) (int64, error)
}

// # Verification Token Data Access

// VerificationTokenRepository defines the storage contract for email verification tokens.
type VerificationTokenRepository interface {

	/*
		Create stores a freshly issued token.

		Parameters:
		  - context: context.Context
		  - token: *VerificationToken

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, token *VerificationToken) error

	/*
		Redeem removes the (identifier, token) row and, when it has not expired at
		verifiedAt, stamps the owning account as verified in the same statement.

		A second redeem of the same pair observes apperr.NotFound.

		Parameters:
		  - context: context.Context
		  - identifier: string
		  - token: string
		  - verifiedAt: time.Time

		Returns:
		  - Redemption: Expiry of the removed row and whether an account was stamped
		  - error: apperr.NotFound or database failures
	*/
	Redeem(context context.Context, identifier, token string, verifiedAt time.Time) (Redemption, error)

	/*
		DeleteExpired removes every token whose expiry is before cutoff.

		Parameters:
		  - context: context.Context
		  - cutoff: time.Time

		Returns:
		  - int64: Number of removed rows
		  - error: Database failures
	*/
	DeleteExpired(context context.Context, cutoff time.Time) (int64, error)
}

// # Volatile Data Access

// CooldownStore throttles repeated actions on a key.
type CooldownStore interface {

	/*
		Acquire claims key for ttl.

		Parameters:
		  - context: context.Context
		  - key: string
		  - ttl: time.Duration

		Returns:
		  - bool: false when the key is still cooling down
		  - error: Connectivity failures
	*/
	Acquire(context context.Context, key string, ttl time.Duration) (bool, error)
}
