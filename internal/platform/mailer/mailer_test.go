// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/mailer"
	"github.com/taibuivan/cookbook/internal/platform/mailer/templates"
)

type recordingTransport struct {
	from     string
	sent     []mailer.Message
	deadline bool
	err      error
}

func (transport *recordingTransport) Name() string { return "recording" }

func (transport *recordingTransport) Send(ctx context.Context, from string, message mailer.Message) error {
	_, transport.deadline = ctx.Deadline()
	transport.from = from
	transport.sent = append(transport.sent, message)
	return transport.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestNew_ProviderSelection covers disabled, enabled, and unknown providers.
*/
func TestNew_ProviderSelection(t *testing.T) {
	tests := []struct {
		name        string
		settings    mailer.Settings
		wantEnabled bool
		wantErr     bool
	}{
		{"no_provider", mailer.Settings{}, false, false},
		{"resend_without_key", mailer.Settings{Provider: "resend"}, false, false},
		{"resend", mailer.Settings{Provider: "resend", ResendAPIKey: "re_test"}, true, false},
		{"mailgun_missing_domain", mailer.Settings{Provider: "mailgun", MailgunAPIKey: "key"}, false, false},
		{"mailgun", mailer.Settings{Provider: "mailgun", MailgunDomain: "mg.example.com", MailgunAPIKey: "key"}, true, false},
		{"unknown", mailer.Settings{Provider: "carrier-pigeon"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := mailer.New(tt.settings, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnabled, m.Enabled())
		})
	}
}

/*
TestMailer_Send checks the sender address, deadline, and error paths.
*/
func TestMailer_Send(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		m := mailer.NewWithTransport(nil, "no-reply@cookbook.app", time.Second, discardLogger())
		err := m.Send(context.Background(), mailer.Message{To: "cook@example.com"})
		assert.ErrorIs(t, err, mailer.ErrDisabled)
	})

	t.Run("delivers", func(t *testing.T) {
		transport := &recordingTransport{}
		m := mailer.NewWithTransport(transport, "no-reply@cookbook.app", time.Second, discardLogger())

		err := m.Send(context.Background(), mailer.Message{To: "cook@example.com", Subject: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "no-reply@cookbook.app", transport.from)
		assert.True(t, transport.deadline)
		require.Len(t, transport.sent, 1)
		assert.Equal(t, "cook@example.com", transport.sent[0].To)
	})

	t.Run("provider_failure", func(t *testing.T) {
		boom := errors.New("boom")
		m := mailer.NewWithTransport(&recordingTransport{err: boom}, "x@y.z", 0, discardLogger())
		assert.ErrorIs(t, m.Send(context.Background(), mailer.Message{}), boom)
	})
}

/*
TestRender_VerifyEmail renders every part and applies the greeting fallback.
*/
func TestRender_VerifyEmail(t *testing.T) {
	data := templates.VerifyEmailData{
		Email:       "cook@example.com",
		ProductName: "CookBook Connect",
		VerifyURL:   "http://localhost:8080/api/v1/auth/verify-email?token=abc&email=cook%40example.com",
		ExpiresIn:   "24 hours",
	}

	subject, text, html, err := templates.Render(templates.VerifyEmail, data)
	require.NoError(t, err)

	assert.Equal(t, "🍳 Verify your email - CookBook Connect", subject)
	assert.Contains(t, text, "Hi there,")
	assert.Contains(t, text, data.VerifyURL)
	assert.Contains(t, html, "Hi there,")
	assert.Contains(t, html, "token=abc")

	data.Name = "Julia"
	_, text, _, err = templates.Render(templates.VerifyEmail, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi Julia,")
}
