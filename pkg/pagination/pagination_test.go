// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cookbook/pkg/pagination"
)

/*
TestNewMeta covers the page arithmetic including the empty boundary.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty", 1, 12, 0, 0, false, false},
		{"single_page", 1, 12, 5, 1, false, false},
		{"exact_multiple", 2, 12, 24, 2, false, true},
		{"partial_last", 1, 12, 25, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNext)
			assert.Equal(t, tt.wantPrev, meta.HasPrev)
		})
	}
}

/*
TestFromRequestWithLimit clamps malformed query values.
*/
func TestFromRequestWithLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 12},
		{"explicit", "?page=3&limit=5", 3, 5},
		{"negative", "?page=-2&limit=-1", 1, 12},
		{"garbage", "?page=abc&limit=xyz", 1, 12},
		{"over_max", "?limit=1000", 1, pagination.MaxLimit},
		{"huge_page", "?page=9223372036854775807&limit=12", pagination.MaxOffset/12 + 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/recipes"+tt.query, nil)
			params := pagination.FromRequestWithLimit(request, 12)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.GreaterOrEqual(t, params.Offset(), 0)
			assert.LessOrEqual(t, params.Offset(), pagination.MaxOffset)
		})
	}

	assert.Equal(t, 24, pagination.Params{Page: 3, Limit: 12}.Offset())
	assert.Equal(t, pagination.MaxOffset, pagination.Params{Page: math.MaxInt, Limit: 12}.Offset())
}
