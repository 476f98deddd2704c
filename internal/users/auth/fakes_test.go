// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/mailer"
	"github.com/taibuivan/cookbook/internal/users/auth"
)

// # In-memory repositories

type memoryUsers struct {
	byID map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}}
}

func (store *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := store.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range store.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) Create(_ context.Context, user *auth.User) error {
	for _, existing := range store.byID {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_email_key"}
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	store.byID[user.ID] = &clone
	return nil
}

// markVerified stamps the account owning email and reports whether one existed.
func (store *memoryUsers) markVerified(email string, verifiedAt time.Time) bool {
	for _, user := range store.byID {
		if user.Email == email {
			stamp := verifiedAt
			user.EmailVerified = &stamp
			return true
		}
	}
	return false
}

type memorySessions struct {
	byHash map[string]*auth.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{byHash: map[string]*auth.Session{}}
}

func (store *memorySessions) Create(_ context.Context, session *auth.Session) error {
	clone := *session
	store.byHash[session.TokenHash] = &clone
	return nil
}

func (store *memorySessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := store.byHash[tokenHash]
	if !ok || session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return nil, apperr.NotFound("Session")
	}
	clone := *session
	return &clone, nil
}

func (store *memorySessions) Revoke(_ context.Context, sessionID string) error {
	for _, session := range store.byHash {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (store *memorySessions) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for hash, session := range store.byHash {
		if !time.Now().Before(session.ExpiresAt) {
			delete(store.byHash, hash)
			deleted++
		}
	}
	return deleted, nil
}

// memoryTokens shares the user map so a redeem stamps the account in one step.
// failRedeem simulates a statement that aborts before committing anything.
type memoryTokens struct {
	rows       map[string]time.Time
	users      *memoryUsers
	failRedeem error
}

func newMemoryTokens(users *memoryUsers) *memoryTokens {
	return &memoryTokens{rows: map[string]time.Time{}, users: users}
}

func tokenKey(identifier, token string) string { return identifier + "|" + token }

func (store *memoryTokens) Create(_ context.Context, token *auth.VerificationToken) error {
	store.rows[tokenKey(token.Identifier, token.Token)] = token.Expires
	return nil
}

func (store *memoryTokens) Redeem(_ context.Context, identifier, token string, verifiedAt time.Time) (auth.Redemption, error) {
	if store.failRedeem != nil {
		return auth.Redemption{}, store.failRedeem
	}

	key := tokenKey(identifier, token)
	expires, ok := store.rows[key]
	if !ok {
		return auth.Redemption{}, apperr.NotFound("Verification token")
	}
	delete(store.rows, key)

	redemption := auth.Redemption{Expires: expires}
	if !verifiedAt.After(expires) {
		redemption.Verified = store.users.markVerified(identifier, verifiedAt)
	}
	return redemption, nil
}

func (store *memoryTokens) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for key, expires := range store.rows {
		if expires.Before(cutoff) {
			delete(store.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

type memoryCooldown struct {
	held map[string]bool
}

func (store *memoryCooldown) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if store.held[key] {
		return false, nil
	}
	store.held[key] = true
	return true, nil
}

type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

type inbox struct {
	messages []mailer.Message
}

func (box *inbox) Name() string { return "inbox" }

func (box *inbox) Send(_ context.Context, _ string, message mailer.Message) error {
	box.messages = append(box.messages, message)
	return nil
}

var linkToken = regexp.MustCompile(`token=([0-9a-f]{64})`)

// lastToken extracts the token from the most recent verification email.
func (box *inbox) lastToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, box.messages)
	match := linkToken.FindStringSubmatch(box.messages[len(box.messages)-1].Text)
	require.Len(t, match, 2)
	return match[1]
}

// # Fixture

type fixture struct {
	service  *auth.Service
	users    *memoryUsers
	sessions *memorySessions
	tokens   *memoryTokens
	inbox    *inbox
	clock    *time.Time
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture wires a Service over in-memory stores. mailEnabled toggles the transport.
func newFixture(mailEnabled bool) *fixture {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	users := newMemoryUsers()
	f := &fixture{
		users:    users,
		sessions: newMemorySessions(),
		tokens:   newMemoryTokens(users),
		inbox:    &inbox{},
		clock:    &now,
	}

	var transport mailer.Transport
	if mailEnabled {
		transport = f.inbox
	}
	sender := mailer.NewWithTransport(transport, "no-reply@cookbook.app", time.Second, discardLogger())

	tokenStore := auth.NewTokenStore(f.tokens).WithClock(func() time.Time { return *f.clock })
	verification := auth.NewVerificationMailer(tokenStore, sender, "http://localhost:8080/api/v1/auth", discardLogger())

	f.service = auth.NewService(
		f.users,
		f.sessions,
		tokenStore,
		verification,
		&memoryCooldown{held: map[string]bool{}},
		stubTokenProvider{},
		discardLogger(),
	)
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}
