// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/sec"
)

/*
TestPassword_RoundTrip verifies bcrypt hashing and comparison.
*/
func TestPassword_RoundTrip(t *testing.T) {
	digest, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", digest)
	assert.True(t, sec.CheckPasswordHash("correct horse", digest))
	assert.False(t, sec.CheckPasswordHash("wrong horse", digest))
	assert.False(t, sec.CheckPasswordHash("correct horse", ""))
}

/*
TestGenerateSecureToken checks length, alphabet, and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.Regexp(t, `^[0-9a-f]{64}$`, first)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken is deterministic and hides the input.
*/
func TestHashToken(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))
	assert.Len(t, sec.HashToken("abc"), 64)
}

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "cookbook.test")

	token, err := service.GenerateAccessToken("user-1", "cook@example.com", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)

	t.Run("expired", func(t *testing.T) {
		expired, err := service.GenerateAccessToken("user-1", "cook@example.com", "member", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(expired)
		assert.Error(t, err)
	})

	t.Run("foreign_issuer", func(t *testing.T) {
		other := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone.else")
		foreign, err := other.GenerateAccessToken("user-1", "cook@example.com", "member", time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(foreign)
		assert.Error(t, err)
	})
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("ghost").Valid())
}
