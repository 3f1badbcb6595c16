// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic list helpers the cart is built from.

They complement the standard [slices] package. None of them modifies its
input; a nil input yields a nil result.
*/
package slice

// Map returns transform applied to every element, in order.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	out := make([]U, 0, len(input))
	for _, element := range input {
		out = append(out, transform(element))
	}
	return out
}

// Filter returns the elements for which keep reports true.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}

	out := make([]T, 0, len(input))
	for _, element := range input {
		if keep(element) {
			out = append(out, element)
		}
	}
	return out
}

// UniqueBy keeps the first element of every key.
func UniqueBy[T any, K comparable](input []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(input))
	return Filter(input, func(element T) bool {
		k := key(element)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}

// Reduce folds input into a single value, left to right.
func Reduce[T, U any](input []T, initial U, fold func(acc U, element T) U) U {
	acc := initial
	for _, element := range input {
		acc = fold(acc, element)
	}
	return acc
}
