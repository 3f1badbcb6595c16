// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toast

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock is the time source of the queue.
type Clock interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// # Scheduler

type scheduled struct {
	timer      Timer
	generation uint64
}

// Scheduler runs keyed one-shot callbacks. Scheduling a key again replaces
// its pending callback.
//
// # Concurrency
//
// Safe for concurrent use. Callbacks run without the scheduler lock held.
type Scheduler struct {
	clock Clock

	mu         sync.Mutex
	pending    map[string]scheduled
	generation uint64
	closed     bool
}

// NewScheduler creates a scheduler on clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock, pending: make(map[string]scheduled)}
}

// Schedule runs fn after delay under key, replacing any pending callback.
func (scheduler *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.closed {
		return
	}
	if previous, ok := scheduler.pending[key]; ok {
		previous.timer.Stop()
	}

	scheduler.generation++
	generation := scheduler.generation

	timer := scheduler.clock.AfterFunc(delay, func() {
		scheduler.mu.Lock()
		current, ok := scheduler.pending[key]
		// A replaced or cancelled timer that fired anyway is stale.
		if !ok || current.generation != generation {
			scheduler.mu.Unlock()
			return
		}
		delete(scheduler.pending, key)
		scheduler.mu.Unlock()

		fn()
	})

	scheduler.pending[key] = scheduled{timer: timer, generation: generation}
}

// Cancel drops the pending callback of key, if any.
func (scheduler *Scheduler) Cancel(key string) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if entry, ok := scheduler.pending[key]; ok {
		entry.timer.Stop()
		delete(scheduler.pending, key)
	}
}

// Pending reports whether key has a callback waiting.
func (scheduler *Scheduler) Pending(key string) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	_, ok := scheduler.pending[key]
	return ok
}

// Close cancels every pending callback and refuses new ones.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	for key, entry := range scheduler.pending {
		entry.timer.Stop()
		delete(scheduler.pending, key)
	}
	scheduler.closed = true
}
