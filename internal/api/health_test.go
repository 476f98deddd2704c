// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cookbook/internal/api"
)

func healthy(context.Context) error { return nil }

/*
TestReadiness reports 200 when every dependency answers and 503 otherwise.
*/
func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ready",
			deps:       api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"status":"ready","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":true}]}}`,
		},
		{
			name: "redis_down",
			deps: api.HealthDependencies{
				CheckDatabase: healthy,
				CheckCache:    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"data":{"status":"degraded","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":false,"error":"connection refused"}]}}`,
		},
		{
			name:       "no_checks",
			deps:       api.HealthDependencies{},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"status":"ready","checks":[]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, logger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

/*
TestLiveness always answers ok.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
