// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/users/auth"
)

func doRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Register checks status codes and the response envelope.
*/
func TestHandler_Register(t *testing.T) {
	f := newFixture(true)
	router := auth.NewHandler(f.service, "http://localhost:3000").Routes()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"created", `{"name":"Julia","email":"julia@example.com","password":"butter-and-cream"}`, http.StatusCreated, ""},
		{"duplicate", `{"name":"Julia","email":"julia@example.com","password":"butter-and-cream"}`, http.StatusBadRequest, auth.CodeDuplicateEmail},
		{"short_password", `{"name":"Bob","email":"bob@example.com","password":"short"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"password_over_bcrypt_limit", `{"name":"Bob","email":"bob@example.com","password":"` + strings.Repeat("p", 80) + `"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_email", `{"name":"Bob","email":"bob","password":"longenough"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_name", `{"email":"bob@example.com","password":"longenough"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(router, http.MethodPost, "/register", tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, envelope["code"])
				return
			}

			data := envelope["data"].(map[string]any)
			assert.Equal(t, true, data["email_sent"])
			user := data["user"].(map[string]any)
			assert.Equal(t, "julia@example.com", user["email"])
			assert.NotContains(t, user, "password_hash")
			assert.NotContains(t, user, "PasswordHash")
		})
	}
}

/*
TestHandler_VerifyEmail redirects on success and reports failures as JSON.
*/
func TestHandler_VerifyEmail(t *testing.T) {
	f := newFixture(true)
	router := auth.NewHandler(f.service, "http://localhost:3000/").Routes()

	_, err := f.service.Register(context.Background(), julia)
	require.NoError(t, err)
	token := f.inbox.lastToken(t)

	target := "/verify-email?token=" + token + "&email=" + url.QueryEscape(julia.Email)

	recorder := doRequest(router, http.MethodGet, target, "")
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "http://localhost:3000/login?verified=true", recorder.Header().Get("Location"))

	recorder = doRequest(router, http.MethodGet, target, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), auth.CodeInvalidToken)

	recorder = doRequest(router, http.MethodGet, "/verify-email", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), auth.CodeMissingParameter)
}

/*
TestHandler_Login sets the refresh cookie on success.
*/
func TestHandler_Login(t *testing.T) {
	f := newFixture(true)
	router := auth.NewHandler(f.service, "http://localhost:3000").Routes()

	_, err := f.service.Register(context.Background(), julia)
	require.NoError(t, err)

	body := `{"email":"julia@example.com","password":"butter-and-cream"}`

	recorder := doRequest(router, http.MethodPost, "/login", body)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Please verify your email before signing in.")

	require.NoError(t, f.service.VerifyEmail(context.Background(), f.inbox.lastToken(t), julia.Email))

	recorder = doRequest(router, http.MethodPost, "/login", body)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Set-Cookie"), "refresh_token=")
	assert.Contains(t, recorder.Body.String(), `"access_token"`)
}
