// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// # Array Field Codec

// EncodeList serialises items as a JSON array. A nil slice encodes as "[]".
func EncodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("recipe: encode list: %w", err)
	}
	return string(data), nil
}

// DecodeList parses a JSON array column.
//
// Empty, null or malformed values decode to an empty, non-nil slice so that
// legacy rows still render.
func DecodeList[T any](raw string) []T {
	if strings.TrimSpace(raw) == "" {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []T{}
	}
	return items
}
