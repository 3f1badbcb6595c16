// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the authentication state of the storefront.

Lifecycle:

	uninitialized -> loading -> authenticated | anonymous

[Controller.Bootstrap] resolves the stored token once at startup. Login, OTP
verification and logout move between authenticated and anonymous afterwards.
The last known user is cached so a session survives a network outage.

Concurrency: every method is safe for concurrent use. Listeners registered
with [Controller.Subscribe] receive a snapshot after each transition and are
called without the controller lock held.
*/
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/internal/storefront/api"
)

// ErrNoUser is reported when a successful call carried no user.
var ErrNoUser = errors.New("session: response carried no user")

// Status is the coarse phase of the session.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusAnonymous
)

func (status Status) String() string {
	switch status {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// State is a snapshot of the session.
type State struct {
	User            *api.User
	IsAuthenticated bool
	IsLoading       bool
	Status          Status

	// Err is the last failure of a session action, cleared by the next one.
	Err error
}

// Gateway is the part of the store API the session needs.
type Gateway interface {
	Register(ctx context.Context, input api.RegisterInput) (*api.Payload, error)
	SendOTP(ctx context.Context, phone string) (*api.Payload, error)
	VerifyOTP(ctx context.Context, phone, otp string) (*api.Payload, error)
	Login(ctx context.Context, phone, password string) (*api.Payload, error)
	Me(ctx context.Context) (*api.Payload, error)
	Logout(ctx context.Context) error
}

// TokenStore is the bearer token slot.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	RemoveToken(ctx context.Context) error
}

// Controller is the Auth State Controller.
type Controller struct {
	gateway Gateway
	tokens  TokenStore
	cache   *storage.Slot[api.User]
	logger  *slog.Logger

	bootstrap sync.Once

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewController wires a session controller. The user cache lives in store.
func NewController(gateway Gateway, tokens TokenStore, store storage.Store, logger *slog.Logger) *Controller {
	return &Controller{
		gateway:   gateway,
		tokens:    tokens,
		cache:     storage.NewSlot[api.User](store, constants.StorageKeyUser, logger),
		logger:    logger,
		state:     State{Status: StatusUninitialized},
		listeners: make(map[int]func(State)),
	}
}

// # Observation

// State returns the current snapshot.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshot()
}

// Subscribe registers fn for every transition and returns its cancel func.
func (controller *Controller) Subscribe(fn func(State)) func() {
	controller.mu.Lock()
	id := controller.nextID
	controller.nextID++
	controller.listeners[id] = fn
	controller.mu.Unlock()

	return func() {
		controller.mu.Lock()
		delete(controller.listeners, id)
		controller.mu.Unlock()
	}
}

// # Startup

/*
Bootstrap resolves the stored token into a session. Only the first call does
work; later calls return the current state.

Outcomes:
  - No token: stale cache dropped, anonymous.
  - Me succeeds with a user: authenticated, cache refreshed.
  - Me succeeds without a user, or answers 401: token and cache cleared, anonymous.
  - Me unreachable: authenticated from the cache when it decodes, anonymous otherwise.
  - Any other failure: anonymous.
*/
func (controller *Controller) Bootstrap(ctx context.Context) State {
	controller.bootstrap.Do(func() {
		controller.update(func(state *State) {
			state.Status = StatusLoading
			state.IsLoading = true
		})
		controller.resolve(ctx)
	})
	return controller.State()
}

func (controller *Controller) resolve(ctx context.Context) {
	if _, ok := controller.tokens.Token(ctx); !ok {
		controller.clearCache(ctx)
		controller.settle(nil, nil)
		return
	}

	payload, err := controller.gateway.Me(ctx)
	switch {
	case err == nil && payload.User != nil:
		controller.saveCache(ctx, *payload.User)
		controller.settle(payload.User, nil)

	case err == nil:
		controller.logger.Warn("session_bootstrap_no_user")
		controller.clearSession(ctx)
		controller.settle(nil, nil)

	case apperr.IsUnauthorized(err):
		controller.clearSession(ctx)
		controller.settle(nil, nil)

	case apperr.IsNetwork(err):
		cached, ok := controller.cache.Load(ctx)
		if ok && cached.ID != 0 {
			controller.logger.Info("session_bootstrap_offline_cache", slog.Int64("user_id", cached.ID))
			controller.settle(&cached, nil)
			return
		}
		controller.clearCache(ctx)
		controller.settle(nil, nil)

	default:
		controller.logger.Warn("session_bootstrap_failed", slog.Any("error", err))
		controller.settle(nil, nil)
	}
}

// # Actions

// Login starts a fresh session with phone and password. The API error is
// returned untouched.
func (controller *Controller) Login(ctx context.Context, phone, password string) (*api.User, error) {
	controller.clearSession(ctx)
	controller.update(func(state *State) {
		state.User = nil
		state.IsAuthenticated = false
		state.Status = StatusAnonymous
		state.Err = nil
	})

	payload, err := controller.gateway.Login(ctx, phone, password)
	return controller.establish(ctx, payload, err)
}

// VerifyOTP confirms a one-time password and starts the session it returns.
func (controller *Controller) VerifyOTP(ctx context.Context, phone, otp string) (*api.User, error) {
	payload, err := controller.gateway.VerifyOTP(ctx, phone, otp)
	return controller.establish(ctx, payload, err)
}

// Register creates an account. The session starts after OTP verification.
func (controller *Controller) Register(ctx context.Context, input api.RegisterInput) (*api.Payload, error) {
	return controller.gateway.Register(ctx, input)
}

// SendOTP requests a one-time password for phone.
func (controller *Controller) SendOTP(ctx context.Context, phone string) (*api.Payload, error) {
	return controller.gateway.SendOTP(ctx, phone)
}

// Logout revokes the session remotely and always tears it down locally.
// A failed remote revoke is logged only.
func (controller *Controller) Logout(ctx context.Context) {
	if err := controller.gateway.Logout(ctx); err != nil {
		controller.logger.Warn("session_logout_remote_failed", slog.Any("error", err))
	}

	controller.clearSession(ctx)
	controller.update(func(state *State) {
		state.User = nil
		state.IsAuthenticated = false
		state.Status = StatusAnonymous
		state.Err = nil
	})
}

// Invalidate ends an authenticated session the server no longer honours.
// It clears the token and the cached user. It is a no-op unless the session
// is authenticated, so startup resolution keeps its own handling.
func (controller *Controller) Invalidate(ctx context.Context) {
	controller.mu.Lock()
	authenticated := controller.state.IsAuthenticated
	controller.mu.Unlock()

	if !authenticated {
		return
	}

	controller.logger.Info("session_invalidated")
	controller.clearSession(ctx)
	controller.settle(nil, nil)
}

// RefreshUser re-fetches the user and replaces the in-memory copy. A 401
// ends the session.
func (controller *Controller) RefreshUser(ctx context.Context) (*api.User, error) {
	payload, err := controller.gateway.Me(ctx)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			controller.Invalidate(ctx)
		}
		return nil, err
	}
	if payload.User == nil {
		return nil, ErrNoUser
	}

	user := *payload.User
	controller.update(func(state *State) {
		state.User = &user
	})
	return &user, nil
}

// SetUser replaces the user of an authenticated session and its cache.
// Used after a profile update.
func (controller *Controller) SetUser(ctx context.Context, user api.User) {
	controller.mu.Lock()
	authenticated := controller.state.IsAuthenticated
	controller.mu.Unlock()

	if !authenticated {
		return
	}

	controller.saveCache(ctx, user)
	controller.update(func(state *State) {
		state.User = &user
	})
}

// # Internals

func (controller *Controller) establish(ctx context.Context, payload *api.Payload, err error) (*api.User, error) {
	if err != nil {
		controller.update(func(state *State) { state.Err = err })
		return nil, err
	}

	if payload.User == nil {
		// A token without a user is not a usable session.
		controller.clearSession(ctx)
		controller.settle(nil, ErrNoUser)
		return nil, ErrNoUser
	}

	user := *payload.User
	controller.saveCache(ctx, user)
	controller.settle(&user, nil)

	controller.logger.Info("session_established", slog.Int64("user_id", user.ID))
	return &user, nil
}

// settle ends in authenticated when user is non-nil, anonymous otherwise.
func (controller *Controller) settle(user *api.User, err error) {
	controller.update(func(state *State) {
		state.User = user
		state.IsAuthenticated = user != nil
		state.IsLoading = false
		state.Err = err
		if user != nil {
			state.Status = StatusAuthenticated
		} else {
			state.Status = StatusAnonymous
		}
	})
}

func (controller *Controller) update(mutate func(state *State)) {
	controller.mu.Lock()
	mutate(&controller.state)
	snapshot := controller.snapshot()
	listeners := make([]func(State), 0, len(controller.listeners))
	for _, fn := range controller.listeners {
		listeners = append(listeners, fn)
	}
	controller.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// snapshot copies the state. Callers hold mu.
func (controller *Controller) snapshot() State {
	snapshot := controller.state
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}

func (controller *Controller) clearSession(ctx context.Context) {
	if err := controller.tokens.RemoveToken(ctx); err != nil {
		controller.logger.Warn("session_token_clear_failed", slog.Any("error", err))
	}
	controller.clearCache(ctx)
}

func (controller *Controller) clearCache(ctx context.Context) {
	if err := controller.cache.Clear(ctx); err != nil {
		controller.logger.Warn("session_cache_clear_failed", slog.Any("error", err))
	}
}

func (controller *Controller) saveCache(ctx context.Context, user api.User) {
	if err := controller.cache.Save(ctx, user); err != nil {
		controller.logger.Warn("session_cache_save_failed", slog.Any("error", err))
	}
}
