// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers.

It wraps google/uuid to generate Version 7 values, so identifiers created by the
client (toast ids) and by the development backend (token ids, request ids) sort
by creation time.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It falls back to a random UUIDv4 if the v7 generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
