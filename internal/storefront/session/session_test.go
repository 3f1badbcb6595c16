// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/internal/storefront/api"
	"github.com/taibuivan/shopfront/internal/storefront/session"
	"github.com/taibuivan/shopfront/internal/storefront/token"
)

// fakeGateway answers with canned results and counts Me calls.
type fakeGateway struct {
	me        func() (*api.Payload, error)
	login     func() (*api.Payload, error)
	verify    func() (*api.Payload, error)
	logoutErr error
	meCalls   atomic.Int32
}

func (gateway *fakeGateway) Register(context.Context, api.RegisterInput) (*api.Payload, error) {
	return &api.Payload{Message: "registered"}, nil
}

func (gateway *fakeGateway) SendOTP(context.Context, string) (*api.Payload, error) {
	return nil, apperr.RateLimited(60)
}

func (gateway *fakeGateway) VerifyOTP(context.Context, string, string) (*api.Payload, error) {
	return gateway.verify()
}

func (gateway *fakeGateway) Login(context.Context, string, string) (*api.Payload, error) {
	return gateway.login()
}

func (gateway *fakeGateway) Me(context.Context) (*api.Payload, error) {
	gateway.meCalls.Add(1)
	return gateway.me()
}

func (gateway *fakeGateway) Logout(context.Context) error {
	return gateway.logoutErr
}

type fixture struct {
	store      *storage.MemoryStore
	tokens     *token.Store
	gateway    *fakeGateway
	controller *session.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	tokens := token.NewStore(store, logging.Discard())
	gateway := &fakeGateway{}
	return &fixture{
		store:      store,
		tokens:     tokens,
		gateway:    gateway,
		controller: session.NewController(gateway, tokens, store, logging.Discard()),
	}
}

func (f *fixture) cachedUser(t *testing.T) (string, bool) {
	t.Helper()
	raw, ok, err := f.store.Get(context.Background(), constants.StorageKeyUser)
	require.NoError(t, err)
	return raw, ok
}

func jane() *api.User {
	verified := "2026-01-02T00:00:00Z"
	return &api.User{ID: 1, Name: "Jane", PhoneNumber: "01700000000", PhoneVerifiedAt: &verified}
}

/*
TestBootstrap covers every startup branch.
*/
func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no_token_drops_stale_cache", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, constants.StorageKeyUser, `{"id":1}`))

		state := f.controller.Bootstrap(ctx)

		assert.Equal(t, session.StatusAnonymous, state.Status)
		assert.False(t, state.IsLoading)
		assert.Zero(t, f.gateway.meCalls.Load())
		_, ok := f.cachedUser(t)
		assert.False(t, ok)
	})

	t.Run("valid_token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))
		f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }

		state := f.controller.Bootstrap(ctx)

		assert.True(t, state.IsAuthenticated)
		assert.Equal(t, "Jane", state.User.Name)
		_, ok := f.cachedUser(t)
		assert.True(t, ok)
	})

	t.Run("unauthorized_clears_everything", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "revoked"))
		require.NoError(t, f.store.Set(ctx, constants.StorageKeyUser, `{"id":1,"name":"Jane"}`))
		f.gateway.me = func() (*api.Payload, error) { return nil, apperr.Unauthorized("Unauthenticated.") }

		state := f.controller.Bootstrap(ctx)

		assert.False(t, state.IsAuthenticated)
		assert.False(t, state.IsLoading)
		_, hasToken := f.tokens.Token(ctx)
		assert.False(t, hasToken)
		_, hasCache := f.cachedUser(t)
		assert.False(t, hasCache)
	})

	t.Run("success_without_user_is_invalid", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))
		f.gateway.me = func() (*api.Payload, error) { return &api.Payload{Message: "ok"}, nil }

		state := f.controller.Bootstrap(ctx)

		assert.Equal(t, session.StatusAnonymous, state.Status)
		_, hasToken := f.tokens.Token(ctx)
		assert.False(t, hasToken)
	})

	t.Run("offline_uses_cache", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))

		cached := storage.NewSlot[api.User](f.store, constants.StorageKeyUser, logging.Discard())
		require.NoError(t, cached.Save(ctx, *jane()))
		f.gateway.me = func() (*api.Payload, error) { return nil, apperr.Network(errors.New("refused")) }

		state := f.controller.Bootstrap(ctx)

		assert.True(t, state.IsAuthenticated)
		assert.False(t, state.IsLoading)
		assert.Equal(t, jane(), state.User)
		_, hasToken := f.tokens.Token(ctx)
		assert.True(t, hasToken)
	})

	t.Run("offline_with_corrupt_cache", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))
		require.NoError(t, f.store.Set(ctx, constants.StorageKeyUser, `{not json`))
		f.gateway.me = func() (*api.Payload, error) { return nil, apperr.Network(errors.New("refused")) }

		state := f.controller.Bootstrap(ctx)

		assert.False(t, state.IsAuthenticated)
		_, hasCache := f.cachedUser(t)
		assert.False(t, hasCache)
	})

	t.Run("server_error_is_anonymous", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))
		f.gateway.me = func() (*api.Payload, error) { return nil, apperr.FromResponse(500, nil) }

		state := f.controller.Bootstrap(ctx)

		assert.Equal(t, session.StatusAnonymous, state.Status)
		assert.False(t, state.IsLoading)
	})
}

/*
TestBootstrap_RunsOnce calls the backend a single time and ends loading once.
*/
func TestBootstrap_RunsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(ctx, "tok"))
	f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }

	var loadingEnded int
	var wasLoading bool
	cancel := f.controller.Subscribe(func(state session.State) {
		if state.IsLoading {
			wasLoading = true
		} else if wasLoading {
			loadingEnded++
			wasLoading = false
		}
	})
	defer cancel()

	f.controller.Bootstrap(ctx)
	f.controller.Bootstrap(ctx)

	assert.Equal(t, int32(1), f.gateway.meCalls.Load())
	assert.Equal(t, 1, loadingEnded)
}

/*
TestLogin covers success, propagation of API errors and session reset.
*/
func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.login = func() (*api.Payload, error) {
			// The API client persists the token on success.
			require.NoError(t, f.tokens.SetToken(ctx, "fresh"))
			return &api.Payload{User: &api.User{ID: 1, Name: "Jane"}, Token: "fresh"}, nil
		}

		user, err := f.controller.Login(ctx, "01700000000", "secret")
		require.NoError(t, err)
		assert.Equal(t, "Jane", user.Name)

		state := f.controller.State()
		assert.Equal(t, session.StatusAuthenticated, state.Status)
		assert.Equal(t, "Jane", state.User.Name)

		value, _ := f.tokens.Token(ctx)
		assert.Equal(t, "fresh", value)
		_, hasCache := f.cachedUser(t)
		assert.True(t, hasCache)
	})

	t.Run("validation_error_untouched", func(t *testing.T) {
		f := newFixture(t)
		validation := apperr.Validation("invalid", map[string][]string{"phone_number": {"Required"}})
		f.gateway.login = func() (*api.Payload, error) { return nil, validation }

		_, err := f.controller.Login(ctx, "", "")
		assert.Same(t, validation, err)
		assert.False(t, f.controller.State().IsAuthenticated)
		assert.Same(t, validation, f.controller.State().Err)
	})

	t.Run("clears_previous_session_first", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "old"))
		require.NoError(t, f.store.Set(ctx, constants.StorageKeyUser, `{"id":9,"name":"Old"}`))
		f.gateway.login = func() (*api.Payload, error) {
			_, hasToken := f.tokens.Token(ctx)
			assert.False(t, hasToken)
			return nil, apperr.Unauthorized("Invalid credentials.")
		}

		_, err := f.controller.Login(ctx, "01700000000", "wrong")
		require.Error(t, err)
		_, hasCache := f.cachedUser(t)
		assert.False(t, hasCache)
	})

	t.Run("no_user_is_not_a_session", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.login = func() (*api.Payload, error) { return &api.Payload{Token: "orphan"}, nil }

		_, err := f.controller.Login(ctx, "01700000000", "secret")
		assert.ErrorIs(t, err, session.ErrNoUser)
		assert.False(t, f.controller.State().IsAuthenticated)
	})
}

/*
TestVerifyOTP starts a session from the verification answer.
*/
func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.verify = func() (*api.Payload, error) { return &api.Payload{User: jane(), Token: "t"}, nil }

		_, err := f.controller.VerifyOTP(ctx, "01700000000", "123456")
		require.NoError(t, err)
		assert.True(t, f.controller.State().IsAuthenticated)
	})

	t.Run("no_user_while_authenticated", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.login = func() (*api.Payload, error) {
			require.NoError(t, f.tokens.SetToken(ctx, "t1"))
			return &api.Payload{User: jane(), Token: "t1"}, nil
		}
		_, err := f.controller.Login(ctx, "01700000000", "secret")
		require.NoError(t, err)

		f.gateway.verify = func() (*api.Payload, error) {
			require.NoError(t, f.tokens.SetToken(ctx, "t2"))
			return &api.Payload{Token: "t2"}, nil
		}
		_, err = f.controller.VerifyOTP(ctx, "01700000000", "123456")
		assert.ErrorIs(t, err, session.ErrNoUser)

		state := f.controller.State()
		assert.False(t, state.IsAuthenticated)
		assert.Nil(t, state.User)
		assert.Equal(t, session.StatusAnonymous, state.Status)
		assert.ErrorIs(t, state.Err, session.ErrNoUser)
		_, hasToken := f.tokens.Token(ctx)
		assert.False(t, hasToken)
		_, hasCache := f.cachedUser(t)
		assert.False(t, hasCache)
	})
}

/*
TestInvalidate ends an authenticated session and leaves others alone.
*/
func TestInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(ctx, "tok"))
		f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }
		require.True(t, f.controller.Bootstrap(ctx).IsAuthenticated)

		f.controller.Invalidate(ctx)

		state := f.controller.State()
		assert.False(t, state.IsAuthenticated)
		assert.Equal(t, session.StatusAnonymous, state.Status)
		_, hasToken := f.tokens.Token(ctx)
		assert.False(t, hasToken)
		_, hasCache := f.cachedUser(t)
		assert.False(t, hasCache)
	})

	t.Run("uninitialized_is_noop", func(t *testing.T) {
		f := newFixture(t)
		var calls int
		f.controller.Subscribe(func(session.State) { calls++ })

		f.controller.Invalidate(ctx)

		assert.Zero(t, calls)
		assert.Equal(t, session.StatusUninitialized, f.controller.State().Status)
	})
}

/*
TestRegisterAndSendOTP pass through without changing the session.
*/
func TestRegisterAndSendOTP(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	payload, err := f.controller.Register(ctx, api.RegisterInput{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "registered", payload.Message)

	_, err = f.controller.SendOTP(ctx, "01700000000")
	assert.Equal(t, 429, apperr.As(err).Status)

	assert.Equal(t, session.StatusUninitialized, f.controller.State().Status)
}

/*
TestLogout tears down locally even when the server call fails.
*/
func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(ctx, "tok"))
	f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }
	f.controller.Bootstrap(ctx)
	require.True(t, f.controller.State().IsAuthenticated)

	f.gateway.logoutErr = apperr.Network(errors.New("offline"))
	f.controller.Logout(ctx)

	state := f.controller.State()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	_, hasToken := f.tokens.Token(ctx)
	assert.False(t, hasToken)
	_, hasCache := f.cachedUser(t)
	assert.False(t, hasCache)
}

/*
TestRefreshUser replaces the user only, and ends the session on a 401.
*/
func TestRefreshUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(ctx, "tok"))
	f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }
	f.controller.Bootstrap(ctx)

	renamed := jane()
	renamed.Name = "Janet"
	f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: renamed}, nil }

	user, err := f.controller.RefreshUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.Name)
	assert.True(t, f.controller.State().IsAuthenticated)
	assert.Equal(t, "Janet", f.controller.State().User.Name)

	f.gateway.me = func() (*api.Payload, error) { return nil, apperr.Unauthorized("Unauthenticated.") }
	_, err = f.controller.RefreshUser(ctx)
	require.Error(t, err)
	assert.False(t, f.controller.State().IsAuthenticated)
}

/*
TestSubscribe_Cancel stops notifications after cancel.
*/
func TestSubscribe_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var calls int
	cancel := f.controller.Subscribe(func(session.State) { calls++ })
	f.controller.Bootstrap(ctx)
	seen := calls
	assert.Positive(t, seen)

	cancel()
	f.gateway.logoutErr = nil
	f.controller.Logout(ctx)
	assert.Equal(t, seen, calls)
}

/*
TestState_IsACopy does not leak the internal user pointer.
*/
func TestState_IsACopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(ctx, "tok"))
	f.gateway.me = func() (*api.Payload, error) { return &api.Payload{User: jane()}, nil }
	f.controller.Bootstrap(ctx)

	f.controller.State().User.Name = "Mallory"
	assert.Equal(t, "Jane", f.controller.State().User.Name)
}
