// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cookbook/internal/platform/dberr"
)

/*
TestClassifiers matches wrapped PgErrors by SQLSTATE.
*/
func TestClassifiers(t *testing.T) {
	unique := fmt.Errorf("insert favorite: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	foreign := fmt.Errorf("insert rating: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	plain := errors.New("connection reset")

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.False(t, dberr.IsForeignKeyViolation(unique))

	assert.True(t, dberr.IsForeignKeyViolation(foreign))
	assert.False(t, dberr.IsUniqueViolation(foreign))

	assert.False(t, dberr.IsUniqueViolation(plain))
	assert.False(t, dberr.IsForeignKeyViolation(nil))
}
