// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer

import (
	"context"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunTransport delivers mail through the Mailgun API.
type MailgunTransport struct {
	client *mg.MailgunImpl
}

// NewMailgunTransport creates a Mailgun-backed [Transport].
func NewMailgunTransport(domain, apiKey string) *MailgunTransport {
	return &MailgunTransport{client: mg.NewMailgun(domain, apiKey)}
}

// Name implements [Transport].
func (transport *MailgunTransport) Name() string { return ProviderMailgun }

// Send implements [Transport].
func (transport *MailgunTransport) Send(ctx context.Context, from string, message Message) error {
	msg := transport.client.NewMessage(from, message.Subject, message.Text, message.To)
	if message.HTML != "" {
		msg.SetHtml(message.HTML)
	}

	_, _, err := transport.client.Send(ctx, msg)
	return err
}
