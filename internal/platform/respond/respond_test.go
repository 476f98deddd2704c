// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/respond"
	"github.com/taibuivan/cookbook/pkg/pagination"
)

/*
TestError_StatusMapping verifies AppErrors keep their status and unknown errors are masked.
*/
func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not_found", apperr.NotFound("Recipe"), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", apperr.Forbidden("Not yours"), http.StatusForbidden, "FORBIDDEN"},
		{"bad_request", apperr.BadRequest("EMAIL_IN_USE", "Email address is already in use"), http.StatusBadRequest, "EMAIL_IN_USE"},
		{"not_verified", apperr.EmailNotVerified(), http.StatusForbidden, "EMAIL_NOT_VERIFIED"},
		{"unknown", errors.New("pg: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, body.Error, "pg:")
		})
	}
}

/*
TestPaginated writes data with the metadata block.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(1, 12, 1))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":["a"],"meta":{"page":1,"limit":12,"total":1,"total_pages":1,"has_next":false,"has_prev":false}}`,
		recorder.Body.String(),
	)
}

/*
TestStatus writes an explicit status inside the success envelope.
*/
func TestStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Status(recorder, http.StatusCreated, map[string]int{"rating": 5})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"rating":5}}`, recorder.Body.String())
}
