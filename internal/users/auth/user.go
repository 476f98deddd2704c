// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session, VerificationToken) and the
account lifecycle up to the point of signing in: registration, email
verification, credential checks and refresh-token sessions.

# Architecture

Entities defined here have no storage dependencies. The account package reuses
[User] for profile management and credential rotation.
*/
package auth

import (
	"time"

	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/pkg/pointer"
)

// # Domain Entities

// User represents a registered cook.
//
// PasswordHash is nil for accounts created through an external provider.
// EmailVerified is nil until the verification link is consumed.
type User struct {
	ID            string       `json:"id"`
	Name          *string      `json:"name"`
	Email         string       `json:"email"`
	PasswordHash  *string      `json:"-"` // Explicitly omitted from JSON for security.
	EmailVerified *time.Time   `json:"email_verified"`
	Image         *string      `json:"image"`
	Bio           *string      `json:"bio"`
	Role          sec.UserRole `json:"role"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsVerified reports whether the email address has been confirmed.
func (user *User) IsVerified() bool {
	return user.EmailVerified != nil
}

// HasPassword reports whether a credential is on file.
func (user *User) HasPassword() bool {
	return user.PasswordHash != nil && *user.PasswordHash != ""
}

// DisplayName returns the name or an empty string.
func (user *User) DisplayName() string {
	return pointer.Val(user.Name)
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// VerificationToken is a single-use proof of email ownership.
//
// Identifier holds the email address the token was issued for.
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
	CreatedAt  time.Time
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldToken       = "token"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
	FieldEmailSent   = "email_sent"
	FieldMessage     = "message"
)
