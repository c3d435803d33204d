// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package slice complements the standard [slices] package with generic helpers
used when shaping store results into API views.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
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

// Filter filters a slice, returning only elements where the predicate function evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Reduce reduces a slice into a single accumulated result using the reducer function.
func Reduce[T any, U any](input []T, initial U, reducer func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = reducer(result, v)
	}
	return result
}

// IndexBy builds a lookup map keyed by key(v). Later duplicates win.
func IndexBy[T any, K comparable](input []T, key func(T) K) map[K]T {
	index := make(map[K]T, len(input))
	for _, v := range input {
		index[key(v)] = v
	}
	return index
}
