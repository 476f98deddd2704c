// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/sec"
)

// # Verification Token Store

var (
	// ErrTokenNotFound means no (email, token) pair exists (never issued or already consumed).
	ErrTokenNotFound = errors.New("verification token not found")

	// ErrTokenExpired means the pair existed but its expiry had passed. The row is removed.
	ErrTokenExpired = errors.New("verification token expired")
)

// Redemption is the outcome of a single token redeem.
type Redemption struct {
	Expires  time.Time
	Verified bool
}

// TokenStore issues and consumes email verification tokens.
type TokenStore struct {
	tokens VerificationTokenRepository
	now    func() time.Time
}

// NewTokenStore constructs a [TokenStore] backed by the given repository.
func NewTokenStore(tokens VerificationTokenRepository) *TokenStore {
	return &TokenStore{tokens: tokens, now: time.Now}
}

// WithClock replaces the time source.
func (store *TokenStore) WithClock(now func() time.Time) *TokenStore {
	store.now = now
	return store
}

/*
Issue creates a new token for email valid for [VerificationTokenTTL].

Earlier tokens for the same email remain valid until consumed or expired.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: 64-character hex token
  - error: Generation or persistence failures
*/
func (store *TokenStore) Issue(context context.Context, email string) (string, error) {
	value, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err != nil {
		return "", fmt.Errorf("token_store_generate_failed: %w", err)
	}

	now := store.now()
	token := &VerificationToken{
		Identifier: email,
		Token:      value,
		Expires:    now.Add(VerificationTokenTTL),
		CreatedAt:  now,
	}

	if err := store.tokens.Create(context, token); err != nil {
		return "", fmt.Errorf("token_store_issue_failed: %w", err)
	}

	return value, nil
}

/*
Consume redeems (email, token) and marks the account's email as verified.

The row is removed whenever it existed, whether or not it had expired. Removal
and the verification stamp commit together.

Parameters:
  - context: context.Context
  - email: string
  - token: string

Returns:
  - error: ErrTokenNotFound, ErrTokenExpired, or storage failures
*/
func (store *TokenStore) Consume(context context.Context, email, token string) error {
	now := store.now()

	redemption, err := store.tokens.Redeem(context, email, token, now)
	if err != nil {
		if apperr.IsNotFound(err) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("token_store_redeem_failed: %w", err)
	}

	if now.After(redemption.Expires) {
		return ErrTokenExpired
	}

	// Account deleted between issue and consume.
	if !redemption.Verified {
		return ErrTokenNotFound
	}

	return nil
}

// Cleanup removes every expired token and returns how many were deleted.
func (store *TokenStore) Cleanup(context context.Context) (int64, error) {
	deleted, err := store.tokens.DeleteExpired(context, store.now())
	if err != nil {
		return 0, fmt.Errorf("token_store_cleanup_failed: %w", err)
	}
	return deleted, nil
}
