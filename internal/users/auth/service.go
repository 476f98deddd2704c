// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/dberr"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/platform/validate"
	"github.com/taibuivan/cookbook/pkg/pointer"
	"github.com/taibuivan/cookbook/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// VerificationSender dispatches the verify-email message.
type VerificationSender interface {
	SendVerificationEmail(context context.Context, email, name string) bool
}

// Service implements user authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenStore        *TokenStore
	verification      VerificationSender
	cooldown          CooldownStore
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenStore *TokenStore,
	verification VerificationSender,
	cooldown CooldownStore,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenStore:        tokenStore,
		verification:      verification,
		cooldown:          cooldown,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult reports the created account and whether the verification email went out.
type RegisterResult struct {
	User      *User
	EmailSent bool
}

// errDuplicateEmail is the client-facing rejection for an address already on file.
func errDuplicateEmail() *apperr.AppError {
	return apperr.BadRequest(CodeDuplicateEmail, "User already exists")
}

/*
Register hashes the password, persists an unverified account, and sends the
verification email.

Description: The email failure path never rolls back the account; the
caller learns about it through RegisterResult.EmailSent.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *RegisterResult: Created entity and email outcome
  - error: DUPLICATE_EMAIL or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*RegisterResult, error) {
	if len(input.Password) > sec.MaxPasswordBytes {
		return nil, validate.RequiredError(FieldPassword, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes))
	}

	// Fast path duplicate check. The unique index settles concurrent registrations.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, errDuplicateEmail()
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         pointer.NilIfZero(strings.TrimSpace(input.Name)),
		Email:        input.Email,
		PasswordHash: pointer.To(hashedPassword),
		Role:         sec.RoleMember,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, errDuplicateEmail()
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	emailSent := service.verification.SendVerificationEmail(context, user.Email, user.DisplayName())

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.Bool("email_sent", emailSent),
	)

	return &RegisterResult{User: user, EmailSent: emailSent}, nil
}

// # Email Verification

/*
VerifyEmail redeems a verification link.

Parameters:
  - context: context.Context
  - token: string
  - email: string

Returns:
  - error: MISSING_PARAMETER, INVALID_TOKEN, TOKEN_EXPIRED or storage failures
*/
func (service *Service) VerifyEmail(context context.Context, token, email string) error {
	if token == "" || email == "" {
		return apperr.BadRequest(CodeMissingParameter, "Missing token or email")
	}

	err := service.tokenStore.Consume(context, email, token)
	switch {
	case err == nil:
		service.logger.Info("email_verified")
		return nil
	case errors.Is(err, ErrTokenNotFound):
		return apperr.BadRequest(CodeInvalidToken, "Invalid or expired verification token")
	case errors.Is(err, ErrTokenExpired):
		return apperr.BadRequest(CodeTokenExpired, "Verification token has expired")
	default:
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}
}

// ResendResult is the client-facing outcome of a resend request.
type ResendResult struct {
	Message string `json:"message"`
}

// resendGenericMessage does not reveal whether the address is registered.
const resendGenericMessage = "If an account exists for this email, a verification link has been sent."

/*
ResendVerification sends a fresh verification link to an unverified account.

Description: Throttled per address for [ResendCooldown]. Unknown addresses
receive the same response as known ones.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *ResendResult: Client-safe message
  - error: RateLimited or storage failures
*/
func (service *Service) ResendVerification(context context.Context, email string) (*ResendResult, error) {
	acquired, err := service.cooldown.Acquire(context, email, ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("auth_service_resend_cooldown_failed: %w", err)
	}
	if !acquired {
		return nil, apperr.RateLimited(int(ResendCooldown / time.Second))
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return &ResendResult{Message: resendGenericMessage}, nil
		}
		return nil, fmt.Errorf("auth_service_resend_lookup_failed: %w", err)
	}

	if user.IsVerified() {
		return &ResendResult{Message: "Email is already verified"}, nil
	}

	service.verification.SendVerificationEmail(context, user.Email, user.DisplayName())
	return &ResendResult{Message: resendGenericMessage}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and issues security tokens.

Description: The password is checked before the verification state so an
unverified account is only disclosed to someone holding its password.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized, EMAIL_NOT_VERIFIED, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !user.HasPassword() || !sec.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !user.IsVerified() {
		return nil, apperr.EmailNotVerified()
	}

	session, err := service.issueSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout permanently revokes the session owning refreshToken.

Description: Idempotent. An unknown token is treated as already logged out.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

Description: Revokes the presented token and issues a new pair.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Deleted accounts cascade their sessions, but a row may still be in flight.
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

// issueSession signs an access token and persists a new refresh session.
func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Maintenance

// CleanupReport summarises a cleanup run.
type CleanupReport struct {
	Success         bool      `json:"success"`
	Message         string    `json:"message"`
	ExpiredFound    int64     `json:"expired_found"`
	DeletedCount    int64     `json:"deleted_count"`
	SessionsDeleted int64     `json:"sessions_deleted"`
	Timestamp       time.Time `json:"timestamp"`
}

/*
CleanupExpired removes expired verification tokens and refresh sessions.

Parameters:
  - context: context.Context

Returns:
  - *CleanupReport: Counts of removed rows
  - error: Storage failures
*/
func (service *Service) CleanupExpired(context context.Context) (*CleanupReport, error) {
	tokens, err := service.tokenStore.Cleanup(context)
	if err != nil {
		return nil, err
	}

	sessions, err := service.sessionRepository.DeleteExpired(context)
	if err != nil {
		return nil, fmt.Errorf("auth_service_cleanup_sessions_failed: %w", err)
	}

	service.logger.Info("expired_tokens_cleaned",
		slog.Int64("tokens", tokens),
		slog.Int64("sessions", sessions),
	)

	return &CleanupReport{
		Success:         true,
		Message:         fmt.Sprintf("Cleaned up %d expired verification tokens", tokens),
		ExpiredFound:    tokens,
		DeletedCount:    tokens,
		SessionsDeleted: sessions,
		Timestamp:       time.Now().UTC(),
	}, nil
}

/*
RunJanitor calls [Service.CleanupExpired] every interval until context is cancelled.
A non-positive interval disables the janitor.

Parameters:
  - context: context.Context
  - interval: time.Duration
*/
func (service *Service) RunJanitor(context context.Context, interval time.Duration) {
	if interval <= 0 {
		service.logger.Warn("token_janitor_disabled", slog.Duration("interval", interval))
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			service.logger.Info("token_janitor_stopped")
			return
		case <-ticker.C:
			if _, err := service.CleanupExpired(context); err != nil {
				service.logger.Error("token_janitor_failed", slog.Any("error", err))
			}
		}
	}
}
