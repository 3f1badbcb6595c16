// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses numeric path parameters and command arguments.

Parse failures are not errors here: an id that does not parse reads as 0,
which no record has, so the caller answers "not found" or "invalid id" with
the same code path.
*/
package convert

import "strconv"

// ToInt64 parses a base-10 int64. Empty or malformed input yields 0.
func ToInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToIntD parses a base-10 int, or returns def when s is empty or malformed.
func ToIntD(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
