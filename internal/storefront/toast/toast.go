// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package toast is the notification queue of the storefront.

Each toast moves through created -> visible -> dismissed -> removed. A
visible toast dismisses itself once its duration has elapsed; a dismissed
toast stays in the list for the removal delay so an exit animation can play,
then it is removed.

While the queue is paused (the pointer rests on the notification area) no
toast expires. Resuming credits the paused time to every toast.

All timers go through a [Scheduler] on an injectable [Clock].
*/
package toast

import (
	"math"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// Type selects the default duration and the icon of a toast.
type Type string

const (
	TypeBlank   Type = "blank"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeLoading Type = "loading"
	TypeCustom  Type = "custom"
)

// Infinite is the duration of a toast that never expires on its own.
const Infinite = time.Duration(math.MaxInt64)

// DefaultDuration returns the lifetime of a toast of type kind.
func DefaultDuration(kind Type) time.Duration {
	switch kind {
	case TypeSuccess:
		return constants.ToastDurationSuccess
	case TypeError:
		return constants.ToastDurationError
	case TypeLoading:
		return Infinite
	case TypeCustom:
		return constants.ToastDurationCustom
	default:
		return constants.ToastDurationBlank
	}
}

// Toast is one notification.
type Toast struct {
	ID        string
	Type      Type
	Message   string
	Icon      string
	CreatedAt time.Time

	// Duration is the visible lifetime, or [Infinite].
	Duration time.Duration

	// PauseDuration is the total time the queue was paused while this toast
	// existed. It extends the lifetime.
	PauseDuration time.Duration

	Visible   bool
	Dismissed bool

	// Height is the rendered height reported by the view layer.
	Height int
}

// Remaining is the lifetime left at now. It is never negative.
func (toast Toast) Remaining(now time.Time) time.Duration {
	if toast.Duration == Infinite {
		return Infinite
	}
	remaining := toast.CreatedAt.Add(toast.Duration + toast.PauseDuration).Sub(now)
	return max(remaining, 0)
}

// String renders the toast as a single terminal line.
func (toast Toast) String() string {
	icon := toast.Icon
	if icon == "" {
		switch toast.Type {
		case TypeSuccess:
			icon = "✔"
		case TypeError:
			icon = "✖"
		case TypeLoading:
			icon = "…"
		default:
			icon = "•"
		}
	}
	return icon + " " + toast.Message
}

// # Options

// Option customizes a toast at creation.
type Option func(*Toast)

// WithID reuses id. An existing toast with that id is replaced in place.
func WithID(id string) Option {
	return func(toast *Toast) { toast.ID = id }
}

// WithDuration overrides the default duration.
func WithDuration(duration time.Duration) Option {
	return func(toast *Toast) { toast.Duration = duration }
}

// WithIcon overrides the default icon.
func WithIcon(icon string) Option {
	return func(toast *Toast) { toast.Icon = icon }
}
