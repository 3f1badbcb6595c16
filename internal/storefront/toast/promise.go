// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toast

import (
	"slices"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
)

// PromiseMessages are the texts of the three phases of [Promise].
type PromiseMessages[T any] struct {
	Loading string
	Success func(value T) string
	// Error defaults to the user-facing message of the error.
	Error func(err error) string
}

// Promise shows a loading toast, runs fn, then turns the same toast into a
// success or error toast. fn's results are returned unchanged.
func Promise[T any](queue *Queue, fn func() (T, error), messages PromiseMessages[T], options ...Option) (T, error) {
	id := queue.Loading(messages.Loading, options...)
	resolved := slices.Concat(options, []Option{WithID(id)})

	value, err := fn()
	if err != nil {
		message := apperr.Message(err)
		if messages.Error != nil {
			message = messages.Error(err)
		}
		queue.Error(message, resolved...)
		return value, err
	}

	message := messages.Loading
	if messages.Success != nil {
		message = messages.Success(value)
	}
	queue.Success(message, resolved...)
	return value, nil
}
