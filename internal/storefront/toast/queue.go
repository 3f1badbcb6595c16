// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toast

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/pkg/uuid"
)

// Options configures a [Queue]. Zero values take the defaults.
type Options struct {
	Clock       Clock
	Limit       int
	RemoveDelay time.Duration
}

// Queue is the Notification Queue.
//
// # Concurrency
//
// Safe for concurrent use. Listeners run without the queue lock held, on the
// goroutine that caused the change (a timer goroutine for expirations).
type Queue struct {
	clock       Clock
	scheduler   *Scheduler
	limit       int
	removeDelay time.Duration
	logger      *slog.Logger

	mu        sync.Mutex
	state     queueState
	closed    bool
	listeners map[int]func([]Toast)
	nextID    int
}

// NewQueue creates a notification queue.
func NewQueue(options Options, logger *slog.Logger) *Queue {
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	if options.Limit <= 0 {
		options.Limit = constants.ToastLimit
	}
	if options.RemoveDelay <= 0 {
		options.RemoveDelay = constants.ToastRemoveDelay
	}

	return &Queue{
		clock:       options.Clock,
		scheduler:   NewScheduler(options.Clock),
		limit:       options.Limit,
		removeDelay: options.RemoveDelay,
		logger:      logger,
		listeners:   make(map[int]func([]Toast)),
	}
}

// # Creation

// Show creates or replaces a toast and returns its id.
func (queue *Queue) Show(kind Type, message string, options ...Option) string {
	toast := Toast{
		Type:      kind,
		Message:   message,
		CreatedAt: queue.clock.Now(),
		Duration:  DefaultDuration(kind),
		Visible:   true,
	}
	for _, option := range options {
		option(&toast)
	}
	if toast.ID == "" {
		toast.ID = uuid.New()
	}

	queue.dispatch(action{kind: actionUpsert, toast: toast})
	return toast.ID
}

// Blank shows a plain toast.
func (queue *Queue) Blank(message string, options ...Option) string {
	return queue.Show(TypeBlank, message, options...)
}

// Success shows a success toast.
func (queue *Queue) Success(message string, options ...Option) string {
	return queue.Show(TypeSuccess, message, options...)
}

// Error shows an error toast.
func (queue *Queue) Error(message string, options ...Option) string {
	return queue.Show(TypeError, message, options...)
}

// Loading shows a toast that stays until replaced or dismissed.
func (queue *Queue) Loading(message string, options ...Option) string {
	return queue.Show(TypeLoading, message, options...)
}

// Custom shows a toast whose rendering is left to the view.
func (queue *Queue) Custom(message string, options ...Option) string {
	return queue.Show(TypeCustom, message, options...)
}

// # Lifecycle

// Dismiss hides the toast and removes it after the removal delay.
func (queue *Queue) Dismiss(id string) {
	if id == "" {
		queue.DismissAll()
		return
	}
	if !queue.exists(id) {
		return
	}
	queue.dispatch(action{kind: actionDismiss, id: id})
	queue.scheduleRemoval(id)
}

// DismissAll hides every toast.
func (queue *Queue) DismissAll() {
	ids := queue.ids()
	queue.dispatch(action{kind: actionDismiss})
	for _, id := range ids {
		queue.scheduleRemoval(id)
	}
}

// Remove deletes a toast immediately. An empty id removes every toast.
func (queue *Queue) Remove(id string) {
	targets := []string{id}
	if id == "" {
		targets = queue.ids()
	}
	for _, target := range targets {
		queue.scheduler.Cancel(dismissKey(target))
		queue.scheduler.Cancel(removeKey(target))
	}
	queue.dispatch(action{kind: actionRemove, id: id})
}

// Pause stops every countdown.
func (queue *Queue) Pause() {
	queue.dispatch(action{kind: actionStartPause, at: queue.clock.Now()})
}

// Resume restarts the countdowns, crediting the paused time.
func (queue *Queue) Resume() {
	queue.dispatch(action{kind: actionEndPause, at: queue.clock.Now()})
}

// SetHeight records the rendered height of a toast.
func (queue *Queue) SetHeight(id string, height int) {
	queue.mu.Lock()
	index := slices.IndexFunc(queue.state.toasts, func(toast Toast) bool { return toast.ID == id })
	if index < 0 {
		queue.mu.Unlock()
		return
	}
	toast := queue.state.toasts[index]
	queue.mu.Unlock()

	toast.Height = height
	queue.dispatch(action{kind: actionUpdate, toast: toast})
}

// Close cancels every timer. The queue ignores changes afterwards.
func (queue *Queue) Close() {
	queue.mu.Lock()
	queue.closed = true
	queue.mu.Unlock()

	queue.scheduler.Close()
}

// # Observation

// Toasts returns the active toasts, newest first. Dismissed toasts stay
// until removed.
func (queue *Queue) Toasts() []Toast {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return slices.Clone(queue.state.toasts)
}

// Paused reports whether countdowns are stopped.
func (queue *Queue) Paused() bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return queue.state.pausedAt != nil
}

// Subscribe registers fn for every change and returns its cancel func.
func (queue *Queue) Subscribe(fn func([]Toast)) func() {
	queue.mu.Lock()
	id := queue.nextID
	queue.nextID++
	queue.listeners[id] = fn
	queue.mu.Unlock()

	return func() {
		queue.mu.Lock()
		delete(queue.listeners, id)
		queue.mu.Unlock()
	}
}

// # Internals

func (queue *Queue) dispatch(act action) {
	queue.mu.Lock()
	if queue.closed {
		queue.mu.Unlock()
		return
	}
	queue.state = reduce(queue.state, act, queue.limit)
	toasts := slices.Clone(queue.state.toasts)
	paused := queue.state.pausedAt != nil
	listeners := make([]func([]Toast), 0, len(queue.listeners))
	for _, fn := range queue.listeners {
		listeners = append(listeners, fn)
	}
	queue.mu.Unlock()

	queue.arm(toasts, paused)

	for _, fn := range listeners {
		fn(slices.Clone(toasts))
	}
}

// arm aligns the expiry timers with the toasts: one per visible, finite
// toast, none while paused.
func (queue *Queue) arm(toasts []Toast, paused bool) {
	now := queue.clock.Now()
	var expired []string

	for _, toast := range toasts {
		if paused || toast.Dismissed || toast.Duration == Infinite {
			queue.scheduler.Cancel(dismissKey(toast.ID))
			continue
		}

		remaining := toast.Remaining(now)
		if remaining <= 0 {
			expired = append(expired, toast.ID)
			continue
		}

		id := toast.ID
		queue.scheduler.Schedule(dismissKey(id), remaining, func() {
			queue.Dismiss(id)
		})
	}

	for _, id := range expired {
		queue.Dismiss(id)
	}
}

func (queue *Queue) scheduleRemoval(id string) {
	// A second dismiss does not postpone the removal.
	if queue.scheduler.Pending(removeKey(id)) {
		return
	}
	queue.scheduler.Schedule(removeKey(id), queue.removeDelay, func() {
		queue.logger.Debug("toast_removed", slog.String("id", id))
		queue.dispatch(action{kind: actionRemove, id: id})
	})
}

func (queue *Queue) exists(id string) bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return slices.ContainsFunc(queue.state.toasts, func(toast Toast) bool { return toast.ID == id })
}

func (queue *Queue) ids() []string {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	ids := make([]string, 0, len(queue.state.toasts))
	for _, toast := range queue.state.toasts {
		ids = append(ids, toast.ID)
	}
	return ids
}

func dismissKey(id string) string { return "dismiss:" + id }
func removeKey(id string) string  { return "remove:" + id }
