// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toast

import (
	"slices"
	"time"
)

type actionKind int

const (
	actionAdd actionKind = iota
	actionUpdate
	actionUpsert
	actionDismiss
	actionRemove
	actionStartPause
	actionEndPause
)

type action struct {
	kind  actionKind
	toast Toast
	// id targets dismiss and remove. Empty means every toast.
	id string
	at time.Time
}

type queueState struct {
	toasts   []Toast
	pausedAt *time.Time
}

// reduce is the pure transition function of the queue. Toasts are kept
// newest first and never exceed limit.
func reduce(state queueState, act action, limit int) queueState {
	switch act.kind {
	case actionAdd:
		state.toasts = append([]Toast{act.toast}, state.toasts...)
		if len(state.toasts) > limit {
			state.toasts = state.toasts[:limit]
		}

	case actionUpdate:
		state.toasts = slices.Clone(state.toasts)
		for index, existing := range state.toasts {
			if existing.ID != act.toast.ID {
				continue
			}
			next := act.toast
			if next.Height == 0 {
				next.Height = existing.Height
			}
			state.toasts[index] = next
		}

	case actionUpsert:
		kind := actionAdd
		if slices.ContainsFunc(state.toasts, func(existing Toast) bool { return existing.ID == act.toast.ID }) {
			kind = actionUpdate
		}
		return reduce(state, action{kind: kind, toast: act.toast}, limit)

	case actionDismiss:
		state.toasts = slices.Clone(state.toasts)
		for index := range state.toasts {
			if act.id == "" || state.toasts[index].ID == act.id {
				state.toasts[index].Dismissed = true
				state.toasts[index].Visible = false
			}
		}

	case actionRemove:
		if act.id == "" {
			state.toasts = nil
			break
		}
		state.toasts = slices.DeleteFunc(slices.Clone(state.toasts), func(existing Toast) bool {
			return existing.ID == act.id
		})

	case actionStartPause:
		if state.pausedAt == nil {
			at := act.at
			state.pausedAt = &at
		}

	case actionEndPause:
		if state.pausedAt == nil {
			break
		}
		paused := act.at.Sub(*state.pausedAt)
		state.pausedAt = nil
		state.toasts = slices.Clone(state.toasts)
		for index := range state.toasts {
			state.toasts[index].PauseDuration += paused
		}
	}

	return state
}
