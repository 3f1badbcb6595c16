// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package profile owns the editable account profile.
//
// Failures land on one of two channels: field-level validation messages
// (a 422 carrying errors) or a single generic error. Never both.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/storefront/api"
)

// ErrNoUserData is reported when a successful answer carried no user.
var ErrNoUserData = errors.New("profile: no user data received")

// State is a snapshot of the profile.
type State struct {
	User     *api.User
	Loading  bool
	Updating bool

	// Err is the generic error channel.
	Err error
	// ValidationErrors is the field-level channel, keyed by JSON field name.
	ValidationErrors map[string][]string
}

// Gateway is the part of the store API the profile needs.
type Gateway interface {
	Profile(ctx context.Context) (*api.Payload, error)
	UpdateProfile(ctx context.Context, input api.ProfileInput) (*api.Payload, error)
}

// UserSink receives the user after a successful update.
type UserSink interface {
	SetUser(ctx context.Context, user api.User)
}

// Controller is the Profile State Controller.
type Controller struct {
	gateway Gateway
	sink    UserSink
	logger  *slog.Logger

	mu    sync.Mutex
	state State
}

// NewController creates a profile controller. sink may be nil.
func NewController(gateway Gateway, sink UserSink, logger *slog.Logger) *Controller {
	return &Controller{gateway: gateway, sink: sink, logger: logger}
}

// State returns the current snapshot.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	snapshot := controller.state
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	snapshot.ValidationErrors = maps.Clone(snapshot.ValidationErrors)
	return snapshot
}

// Fetch loads the profile.
func (controller *Controller) Fetch(ctx context.Context) (*api.User, error) {
	controller.set(func(state *State) {
		state.Loading = true
		state.Err = nil
	})

	payload, err := controller.gateway.Profile(ctx)
	if err == nil {
		user, ok := userOf(payload)
		if ok {
			controller.set(func(state *State) {
				state.User = &user
				state.Loading = false
			})
			return &user, nil
		}
		err = ErrNoUserData
	}

	controller.logger.Warn("profile_fetch_failed", slog.Any("error", err))
	controller.set(func(state *State) {
		state.Loading = false
		state.Err = err
	})
	return nil, err
}

// Update applies input. The error is returned on both failure channels so
// the caller can keep its form open.
func (controller *Controller) Update(ctx context.Context, input api.ProfileInput) (*api.User, error) {
	controller.set(func(state *State) {
		state.Updating = true
		state.Err = nil
		state.ValidationErrors = nil
	})

	payload, err := controller.gateway.UpdateProfile(ctx, input)
	if err == nil {
		user, ok := userOf(payload)
		if !ok {
			err = ErrNoUserData
		} else {
			controller.set(func(state *State) {
				state.User = &user
				state.Updating = false
			})
			if controller.sink != nil {
				controller.sink.SetUser(ctx, user)
			}
			return &user, nil
		}
	}

	controller.set(func(state *State) {
		state.Updating = false
		if apperr.IsValidation(err) {
			state.ValidationErrors = maps.Clone(apperr.As(err).Errors)
			return
		}
		state.Err = err
	})
	return nil, err
}

// ClearErrors resets both error channels.
func (controller *Controller) ClearErrors() {
	controller.set(func(state *State) {
		state.Err = nil
		state.ValidationErrors = nil
	})
}

func (controller *Controller) set(mutate func(state *State)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	mutate(&controller.state)
}

// userOf reads the user from "user" in either envelope shape, or from the
// body itself when it is the user object.
func userOf(payload *api.Payload) (api.User, bool) {
	if payload == nil {
		return api.User{}, false
	}
	if payload.User != nil {
		return *payload.User, true
	}

	var user api.User
	if err := payload.Decode(&user); err != nil || user.ID == 0 {
		return api.User{}, false
	}
	return user, true
}
