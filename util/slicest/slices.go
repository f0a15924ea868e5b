// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds small generic slice helpers shared by the views.
package slicest

// Conversion

// ToMap indexes s by the key fn returns for each element.
// Later elements win on duplicate keys.
func ToMap[T any, K comparable, V any, S ~[]T](s S, fn func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(s))
	for _, t := range s {
		k, v := fn(t)
		result[k] = v
	}
	return result
}

// Reduce

// ReduceD reduces slice S to type U using explicit initial value.
// - D: Uses init parameter as starting accumulator.
func ReduceD[T any, S ~[]T, U any](s S, init U, fn func(T, U) U) U {
	for _, t := range s {
		init = fn(t, init)
	}
	return init
}

// Map

// MapX maps s through fn and stops at the first error.
// - X: Stops on failure and returns error.
func MapX[T, U any, S ~[]T](s S, fn func(T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, v := range s {
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result := make([]U, len(s))
	for i, v := range s {
		result[i] = fn(v)
	}
	return result
}

// Filter

// Filter returns the elements fn keeps, in order. The result never aliases s.
func Filter[T any, S ~[]T](s S, fn func(T) bool) S {
	result := make(S, 0, len(s))
	for _, t := range s {
		if fn(t) {
			result = append(result, t)
		}
	}
	return result
}

// Find returns the first element fn accepts.
func Find[T any, S ~[]T](s S, fn func(T) bool) (T, bool) {
	for _, t := range s {
		if fn(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}
