// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds and reads the optional fields of request payloads.

Partial updates use nil for "leave unchanged", so callers need a value's
address more often than the value itself.
*/
package pointer

// To returns the address of a copy of v.
func To[T any](v T) *T {
	return &v
}

// If returns the address of a copy of v when set is true, nil otherwise.
//
// # Example
//
//	input.Name = pointer.If(flags.Changed("name"), name)
func If[T any](set bool, v T) *T {
	if !set {
		return nil
	}
	return &v
}

// Fallback returns *p, or fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
