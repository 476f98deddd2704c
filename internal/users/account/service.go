// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/dberr"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/platform/validate"
	"github.com/taibuivan/cookbook/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the signed-in user's account.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user with activity counts.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}

	counts, err := service.accountRepository.Counts(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_counts_failed: %w", err)
	}

	return &Profile{User: user, Counts: counts}, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
//
// A nil field is left untouched. An empty bio or image clears the value.
type UpdateProfileInput struct {
	Name  *string
	Bio   *string
	Image *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		user.Name = &name
	}

	if input.Bio != nil {
		user.Bio = emptyToNil(strings.TrimSpace(*input.Bio))
	}

	if input.Image != nil {
		user.Image = emptyToNil(strings.TrimSpace(*input.Image))
	}

	if err := service.accountRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Credentials

// ChangePasswordInput carries the password rotation form.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

/*
ChangePassword rotates the user's password after verifying the current one.

Description: Rule checks run before any lookup. Accounts created through an
external provider have no password to rotate.

Parameters:
  - context: context.Context
  - userID: string
  - input: ChangePasswordInput

Returns:
  - error: PASSWORD_MISMATCH, VALIDATION_ERROR, NO_PASSWORD_ON_FILE,
    INVALID_CURRENT_PASSWORD or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return apperr.BadRequest(CodePasswordMismatch, "Passwords don't match")
	}

	if utf8.RuneCountInString(input.NewPassword) < auth.MinPasswordLength {
		return validate.RequiredError(FieldNewPassword, fmt.Sprintf("Minimum %d characters", auth.MinPasswordLength))
	}

	if len(input.NewPassword) > sec.MaxPasswordBytes {
		return validate.RequiredError(FieldNewPassword, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes))
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_change_password_lookup_failed: %w", err)
	}

	if !user.HasPassword() {
		return apperr.BadRequest(CodeNoPasswordOnFile, "No password is set for this account")
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, *user.PasswordHash) {
		return apperr.BadRequest(CodeInvalidCurrentPassword, "Invalid current password")
	}

	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("account_service_change_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))
	return nil
}

// ChangeEmailInput carries the email change form.
type ChangeEmailInput struct {
	NewEmail string
	Password string
}

func errEmailInUse() *apperr.AppError {
	return apperr.BadRequest(CodeEmailInUse, "Email address is already in use")
}

/*
ChangeEmail moves the account to a new address immediately.

Description: The password is required only when one is on file. The
verification state is kept.

Parameters:
  - context: context.Context
  - userID: string
  - input: ChangeEmailInput

Returns:
  - string: The stored email
  - error: INVALID_CURRENT_PASSWORD, EMAIL_IN_USE or storage failures
*/
func (service *Service) ChangeEmail(context context.Context, userID string, input ChangeEmailInput) (string, error) {
	newEmail := strings.TrimSpace(input.NewEmail)

	v := &validate.Validator{}
	v.Required(FieldNewEmail, newEmail).Email(FieldNewEmail, newEmail)
	if err := v.Err(); err != nil {
		return "", err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return "", fmt.Errorf("account_service_change_email_lookup_failed: %w", err)
	}

	if user.HasPassword() && !sec.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return "", apperr.BadRequest(CodeInvalidCurrentPassword, "Invalid current password")
	}

	owner, err := service.accountRepository.FindByEmail(context, newEmail)
	switch {
	case err == nil && owner.ID != userID:
		return "", errEmailInUse()
	case err != nil && !apperr.IsNotFound(err):
		return "", fmt.Errorf("account_service_change_email_lookup_failed: %w", err)
	}

	if err := service.accountRepository.UpdateEmail(context, userID, newEmail); err != nil {
		if dberr.IsUniqueViolation(err) {
			return "", errEmailInUse()
		}
		return "", fmt.Errorf("account_service_change_email_failed: %w", err)
	}

	service.logger.Info("user_email_changed", slog.String("user_id", userID))
	return newEmail, nil
}

// # Lifecycle

/*
DeleteAccount permanently removes the account and everything it owns.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: NotFound or execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.accountRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

func emptyToNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
