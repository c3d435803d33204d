// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Patch payloads model "field absent" as a nil pointer, so building and reading
them is mostly pointer plumbing.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Apply: Overwrites a destination when an optional value is present.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Apply copies *p into dst when p is non-nil and reports whether it did.
func Apply[T any](dst *T, p *T) bool {
	if p == nil {
		return false
	}
	*dst = *p
	return true
}
