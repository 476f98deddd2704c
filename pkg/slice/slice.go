// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds small generic helpers for cleaning request payload lists
before validation.
*/
package slice

// Map applies transform to every element. A nil input stays nil so that
// "required" validation still sees a missing list.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Compact drops zero-valued elements and keeps the first occurrence of each
// remaining value, preserving order.
func Compact[T comparable](input []T) []T {
	if input == nil {
		return nil
	}

	var zero T
	seen := make(map[T]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		if v == zero {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
