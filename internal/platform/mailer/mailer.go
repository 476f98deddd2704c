// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer delivers transactional email through a pluggable provider.

Architecture:

  - Transport: Provider adapter (Resend or Mailgun) that performs the API call.
  - Mailer: Provider-agnostic front door that applies the sender address and
    a bounded send timeout.
  - Templates: Subject/text/html parts embedded in the binary and rendered
    with text/template and html/template.

A Mailer built without credentials is valid but disabled; callers check
[Mailer.Enabled] and skip sending instead of failing.
*/
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// # Contracts & Types

// Provider names accepted by MAIL_PROVIDER.
const (
	ProviderResend  = "resend"
	ProviderMailgun = "mailgun"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 10 * time.Second

// ErrDisabled is returned by [Mailer.Send] when no transport is configured.
var ErrDisabled = errors.New("mailer: transport not configured")

// Message is a single rendered email addressed to one recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport performs the provider-specific delivery call.
type Transport interface {
	// Send delivers message from the given sender address.
	Send(ctx context.Context, from string, message Message) error

	// Name identifies the provider in logs.
	Name() string
}

// Settings selects and configures the transport.
type Settings struct {
	Provider      string
	From          string
	Timeout       time.Duration
	ResendAPIKey  string
	MailgunDomain string
	MailgunAPIKey string
}

// Mailer sends messages through the configured [Transport].
type Mailer struct {
	transport Transport
	from      string
	timeout   time.Duration
	logger    *slog.Logger
}

// # Constructors

// New builds a Mailer from settings.
//
// An empty provider, or a provider with missing credentials, yields a
// disabled Mailer. An unknown provider name is a configuration error.
func New(settings Settings, logger *slog.Logger) (*Mailer, error) {
	var transport Transport

	switch settings.Provider {
	case "":
	case ProviderResend:
		if settings.ResendAPIKey != "" {
			transport = NewResendTransport(settings.ResendAPIKey)
		}
	case ProviderMailgun:
		if settings.MailgunDomain != "" && settings.MailgunAPIKey != "" {
			transport = NewMailgunTransport(settings.MailgunDomain, settings.MailgunAPIKey)
		}
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", settings.Provider)
	}

	if transport == nil {
		logger.Warn("mailer_disabled", slog.String("provider", settings.Provider))
	}

	return NewWithTransport(transport, settings.From, settings.Timeout, logger), nil
}

// NewWithTransport builds a Mailer around an explicit transport (nil disables sending).
func NewWithTransport(transport Transport, from string, timeout time.Duration, logger *slog.Logger) *Mailer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mailer{
		transport: transport,
		from:      from,
		timeout:   timeout,
		logger:    logger,
	}
}

// # Delivery

// Enabled reports whether a transport is configured.
func (mailer *Mailer) Enabled() bool {
	return mailer != nil && mailer.transport != nil
}

/*
Send delivers message within the configured timeout.

Parameters:
  - context: context.Context
  - message: Message

Returns:
  - error: ErrDisabled, or the provider failure
*/
func (mailer *Mailer) Send(ctx context.Context, message Message) error {
	if !mailer.Enabled() {
		return ErrDisabled
	}

	sendCtx, cancel := context.WithTimeout(ctx, mailer.timeout)
	defer cancel()

	startTime := time.Now()
	if err := mailer.transport.Send(sendCtx, mailer.from, message); err != nil {
		return fmt.Errorf("mailer: %s send failed: %w", mailer.transport.Name(), err)
	}

	mailer.logger.Debug("mail_sent",
		slog.String("provider", mailer.transport.Name()),
		slog.String("subject", message.Subject),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	return nil
}
