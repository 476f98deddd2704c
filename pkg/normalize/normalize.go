// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalises user-entered labels such as recipe titles
// and categories.
//
// # Usage
//
// Two visually identical strings typed on different keyboards ("Crème" as one
// code point or as "e" + combining accent) must compare equal when used as a
// category filter. This package handles composition and whitespace.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text converts s to NFC and collapses runs of whitespace into single spaces.
//
// # Transformation Pipeline
//
// 1. Composes to NFC (e + combining acute → é).
// 2. Replaces any Unicode whitespace run with one ASCII space.
// 3. Trims leading/trailing whitespace.
func Text(s string) string {
	result, _, err := transform.String(norm.NFC, s)
	if err != nil {
		result = s
	}
	return strings.Join(strings.FieldsFunc(result, unicode.IsSpace), " ")
}
