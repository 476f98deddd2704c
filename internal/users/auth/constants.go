// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// VerificationTokenTTL is the duration an email verification token remains valid.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token (64 hex chars).
	VerificationTokenLength = 32

	// ResendCooldown is the minimum gap between verification emails to one address.
	ResendCooldown = 2 * time.Minute

	// MinPasswordLength applies to registration and password changes.
	MinPasswordLength = 8
)

// # Error Codes

const (
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeMissingParameter = "MISSING_PARAMETER"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeTokenExpired     = "TOKEN_EXPIRED"
)
