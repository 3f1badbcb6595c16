// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storefront/api"
	"github.com/taibuivan/shopfront/internal/storefront/profile"
	"github.com/taibuivan/shopfront/pkg/pointer"
)

type fakeGateway struct {
	payload *api.Payload
	err     error
	input   api.ProfileInput
}

func (gateway *fakeGateway) Profile(context.Context) (*api.Payload, error) {
	return gateway.payload, gateway.err
}

func (gateway *fakeGateway) UpdateProfile(_ context.Context, input api.ProfileInput) (*api.Payload, error) {
	gateway.input = input
	return gateway.payload, gateway.err
}

type recordingSink struct {
	users []api.User
}

func (sink *recordingSink) SetUser(_ context.Context, user api.User) {
	sink.users = append(sink.users, user)
}

/*
TestFetch covers both envelope shapes and the failure channels.
*/
func TestFetch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		payload  *api.Payload
		err      error
		wantName string
		wantErr  string
	}{
		{"user_field", &api.Payload{User: &api.User{ID: 1, Name: "Jane"}}, nil, "Jane", ""},
		{"user_as_body", &api.Payload{Data: json.RawMessage(`{"id":2,"name":"Ann"}`)}, nil, "Ann", ""},
		{"no_user", &api.Payload{Message: "ok"}, nil, "", "profile: no user data received"},
		{"failure", nil, apperr.FromResponse(500, []byte(`{"message":"Server down"}`)), "", "Server down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := profile.NewController(&fakeGateway{payload: tt.payload, err: tt.err}, nil, logging.Discard())

			user, err := controller.Fetch(ctx)
			state := controller.State()
			assert.False(t, state.Loading)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, errMessage(state.Err))
				assert.Nil(t, state.User)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
			assert.Equal(t, tt.wantName, state.User.Name)
			assert.NoError(t, state.Err)
		})
	}
}

func errMessage(err error) string {
	if ae := apperr.As(err); ae != nil {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

/*
TestUpdate_ValidationChannel routes a 422 to field errors only.
*/
func TestUpdate_ValidationChannel(t *testing.T) {
	validation := apperr.Validation("The given data was invalid.", map[string][]string{"email": {"Invalid"}})
	controller := profile.NewController(&fakeGateway{err: validation}, nil, logging.Discard())

	_, err := controller.Update(context.Background(), api.ProfileInput{Email: pointer.To("bad")})

	require.Error(t, err)
	state := controller.State()
	assert.Equal(t, "Invalid", state.ValidationErrors["email"][0])
	assert.Nil(t, state.Err)
	assert.False(t, state.Updating)
}

/*
TestUpdate_GenericChannel routes other failures to Err.
*/
func TestUpdate_GenericChannel(t *testing.T) {
	controller := profile.NewController(&fakeGateway{err: apperr.Forbidden("Nope")}, nil, logging.Discard())

	_, err := controller.Update(context.Background(), api.ProfileInput{})

	require.Error(t, err)
	state := controller.State()
	assert.Nil(t, state.ValidationErrors)
	assert.Equal(t, "Nope", apperr.Message(state.Err))
}

/*
TestUpdate_Success stores the user, forwards it, and clears old errors.
*/
func TestUpdate_Success(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{err: apperr.Validation("invalid", map[string][]string{"name": {"Required"}})}
	sink := &recordingSink{}
	controller := profile.NewController(gateway, sink, logging.Discard())

	_, err := controller.Update(ctx, api.ProfileInput{Name: pointer.To("")})
	require.Error(t, err)
	require.NotEmpty(t, controller.State().ValidationErrors)

	gateway.err = nil
	gateway.payload = &api.Payload{User: &api.User{ID: 1, Name: "Janet"}}

	user, err := controller.Update(ctx, api.ProfileInput{Name: pointer.To("Janet")})
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.Name)
	assert.Equal(t, "Janet", pointer.Fallback(gateway.input.Name, ""))

	state := controller.State()
	assert.Nil(t, state.ValidationErrors)
	assert.Nil(t, state.Err)
	assert.Equal(t, "Janet", state.User.Name)
	require.Len(t, sink.users, 1)
	assert.Equal(t, "Janet", sink.users[0].Name)
}

/*
TestClearErrors resets both channels.
*/
func TestClearErrors(t *testing.T) {
	validation := apperr.Validation("invalid", map[string][]string{"email": {"Invalid"}})
	controller := profile.NewController(&fakeGateway{err: validation}, nil, logging.Discard())

	_, _ = controller.Update(context.Background(), api.ProfileInput{})
	controller.ClearErrors()

	state := controller.State()
	assert.Nil(t, state.ValidationErrors)
	assert.Nil(t, state.Err)
}
