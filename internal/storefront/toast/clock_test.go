// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toast_test

import (
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/shopfront/internal/storefront/toast"
)

// fakeClock is a manual clock. Timers fire only inside Advance, in due order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) AfterFunc(delay time.Duration, fn func()) toast.Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.seq++
	timer := &fakeTimer{clock: clock, due: clock.now.Add(delay), seq: clock.seq, fn: fn}
	clock.timers = append(clock.timers, timer)
	return timer
}

func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()

	wasActive := !timer.stopped
	timer.stopped = true
	return wasActive
}

// Advance moves time forward by delta, firing due timers on the way.
func (clock *fakeClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(delta)
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		live := clock.timers[:0]
		for _, timer := range clock.timers {
			if !timer.stopped {
				live = append(live, timer)
			}
		}
		clock.timers = live
		sort.Slice(clock.timers, func(i, j int) bool {
			if clock.timers[i].due.Equal(clock.timers[j].due) {
				return clock.timers[i].seq < clock.timers[j].seq
			}
			return clock.timers[i].due.Before(clock.timers[j].due)
		})

		if len(clock.timers) == 0 || clock.timers[0].due.After(target) {
			clock.now = target
			clock.mu.Unlock()
			return
		}

		next := clock.timers[0]
		clock.timers = clock.timers[1:]
		next.stopped = true
		clock.now = next.due
		clock.mu.Unlock()

		next.fn()
	}
}
