// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides small generic helpers for optional values.
//
// Optional filter criteria and partial-update payloads are modeled as
// pointers throughout the API; these helpers remove the boilerplate of
// taking the address of a literal or defending against nil.
package pointer

// To returns a pointer to the provided value.
// Useful when a literal must be passed where a pointer is expected,
// e.g. pointer.To(4.0) for an optional rating bound.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
