// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/dberr"
	"github.com/taibuivan/cookbook/internal/platform/postgres/pgtest"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/users/auth"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

/*
TestPostgresVerificationTokenRepository_Redeem stamps the account in the same
statement that removes the token.
*/
func TestPostgresVerificationTokenRepository_Redeem(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()

	users := auth.NewUserRepository(pool)
	tokens := auth.NewVerificationTokenRepository(pool)
	store := auth.NewTokenStore(tokens)

	newUser := func(t *testing.T) *auth.User {
		t.Helper()
		user := &auth.User{ID: uuid.New(), Email: pgtest.Email("verify"), Role: sec.RoleMember}
		require.NoError(t, users.Create(ctx, user))
		return user
	}

	t.Run("live_token_verifies", func(t *testing.T) {
		user := newUser(t)
		token, err := store.Issue(ctx, user.Email)
		require.NoError(t, err)

		require.NoError(t, store.Consume(ctx, user.Email, token))

		stored, err := users.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.True(t, stored.IsVerified())

		assert.ErrorIs(t, store.Consume(ctx, user.Email, token), auth.ErrTokenNotFound)
	})

	t.Run("expired_token_removed_without_verifying", func(t *testing.T) {
		user := newUser(t)
		value, err := sec.GenerateSecureToken(auth.VerificationTokenLength)
		require.NoError(t, err)
		require.NoError(t, tokens.Create(ctx, &auth.VerificationToken{
			Identifier: user.Email,
			Token:      value,
			Expires:    time.Now().Add(-time.Minute),
			CreatedAt:  time.Now().Add(-time.Hour),
		}))

		redemption, err := tokens.Redeem(ctx, user.Email, value, time.Now())
		require.NoError(t, err)
		assert.False(t, redemption.Verified)

		stored, err := users.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.False(t, stored.IsVerified())

		_, err = tokens.Redeem(ctx, user.Email, value, time.Now())
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("email_uniqueness_is_case_sensitive", func(t *testing.T) {
		lower := "chef+" + uuid.New() + "@example.com"
		require.NoError(t, users.Create(ctx, &auth.User{ID: uuid.New(), Email: lower, Role: sec.RoleMember}))

		mixed := "Chef" + strings.TrimPrefix(lower, "chef")
		require.NoError(t, users.Create(ctx, &auth.User{ID: uuid.New(), Email: mixed, Role: sec.RoleMember}))

		err := users.Create(ctx, &auth.User{ID: uuid.New(), Email: lower, Role: sec.RoleMember})
		assert.True(t, dberr.IsUniqueViolation(err), "got %v", err)
	})
}
