// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/cookbook/internal/platform/constants"
	"github.com/taibuivan/cookbook/internal/platform/mailer"
	"github.com/taibuivan/cookbook/internal/platform/mailer/templates"
)

// # Email Dispatch

// MailSender is the subset of [mailer.Mailer] used for verification emails.
type MailSender interface {
	Enabled() bool
	Send(ctx context.Context, message mailer.Message) error
}

// TokenIssuer issues verification tokens.
type TokenIssuer interface {
	Issue(context context.Context, email string) (string, error)
}

// VerificationMailer composes and sends the verify-email message.
type VerificationMailer struct {
	tokens  TokenIssuer
	sender  MailSender
	baseURL string
	logger  *slog.Logger
}

// NewVerificationMailer constructs a [VerificationMailer].
//
// baseURL is the public prefix of the verify endpoint, e.g. "https://api.example.com/api/v1/auth".
func NewVerificationMailer(tokens TokenIssuer, sender MailSender, baseURL string, logger *slog.Logger) *VerificationMailer {
	return &VerificationMailer{
		tokens:  tokens,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// VerificationLink builds the link embedded in the email.
func (verification *VerificationMailer) VerificationLink(token, email string) string {
	return verification.baseURL + "/verify-email?token=" + url.QueryEscape(token) +
		"&email=" + url.QueryEscape(email)
}

/*
SendVerificationEmail issues a token and mails the verification link.

Description: Never returns an error. When no transport is configured no
token is issued. Every failure is logged and reported as false.

Parameters:
  - context: context.Context
  - email: string
  - name: string (greeting falls back to "there")

Returns:
  - bool: true when the provider accepted the message
*/
func (verification *VerificationMailer) SendVerificationEmail(context context.Context, email, name string) bool {
	if !verification.sender.Enabled() {
		verification.logger.Warn("verification_email_skipped",
			slog.String("reason", "mail transport not configured"),
		)
		return false
	}

	token, err := verification.tokens.Issue(context, email)
	if err != nil {
		verification.logger.Error("verification_token_issue_failed", slog.Any("error", err))
		return false
	}

	data := templates.VerifyEmailData{
		Name:        name,
		Email:       email,
		ProductName: constants.ProductName,
		VerifyURL:   verification.VerificationLink(token, email),
		ExpiresIn:   "24 hours",
	}

	subject, text, html, err := templates.Render(templates.VerifyEmail, data)
	if err != nil {
		verification.logger.Error("verification_email_render_failed", slog.Any("error", err))
		return false
	}

	err = verification.sender.Send(context, mailer.Message{
		To:      email,
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
	if err != nil {
		verification.logger.Error("verification_email_send_failed", slog.Any("error", err))
		return false
	}

	verification.logger.Info("verification_email_sent")
	return true
}
