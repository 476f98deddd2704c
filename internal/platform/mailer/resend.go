// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer

import (
	"context"

	"github.com/resend/resend-go/v3"
)

// ResendTransport delivers mail through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
}

// NewResendTransport creates a Resend-backed [Transport].
func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey)}
}

// Name implements [Transport].
func (transport *ResendTransport) Name() string { return ProviderResend }

// Send implements [Transport].
func (transport *ResendTransport) Send(ctx context.Context, from string, message Message) error {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{message.To},
		Subject: message.Subject,
		Html:    message.HTML,
		Text:    message.Text,
	}

	_, err := transport.client.Emails.SendWithContext(ctx, params)
	return err
}
