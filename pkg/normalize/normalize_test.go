// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cookbook/pkg/normalize"
)

/*
TestText validates composition and whitespace handling.
*/
func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Pancakes", "Pancakes"},
		{"trim", "  Pancakes \n", "Pancakes"},
		{"collapse", "Banana\t\tBread  Loaf", "Banana Bread Loaf"},
		{"compose_accent", "Cre\u0300me Brule\u0301e", "Cr\u00e8me Brul\u00e9e"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Text(tt.input))
		})
	}
}
