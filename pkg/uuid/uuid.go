// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates primary keys for accounts, sessions, recipes,
favorites and ratings.

Keys are UUID version 7, so they sort by creation time and keep the
PostgreSQL B-tree indexes append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 in canonical string form.
//
// It panics if the system entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}

