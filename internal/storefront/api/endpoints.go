// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// # Authentication

// Register creates an account. A session exists only after [Client.VerifyOTP].
func (client *Client) Register(ctx context.Context, input RegisterInput) (*Payload, error) {
	return client.Request(ctx, http.MethodPost, constants.EndpointRegister, input, false)
}

// SendOTP asks the backend to deliver a one-time password to phone.
func (client *Client) SendOTP(ctx context.Context, phone string) (*Payload, error) {
	return client.Request(ctx, http.MethodPost, constants.EndpointSendOTP, phoneRequest{PhoneNumber: phone}, false)
}

// VerifyOTP confirms the one-time password and stores the returned token.
func (client *Client) VerifyOTP(ctx context.Context, phone, otp string) (*Payload, error) {
	payload, err := client.Request(ctx, http.MethodPost, constants.EndpointVerifyOTP, verifyOTPRequest{
		PhoneNumber: phone,
		OTP:         otp,
	}, false)
	if err != nil {
		return nil, err
	}

	if err := client.persistToken(ctx, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Login authenticates with phone and password and stores the returned token.
func (client *Client) Login(ctx context.Context, phone, password string) (*Payload, error) {
	payload, err := client.Request(ctx, http.MethodPost, constants.EndpointLogin, loginRequest{
		PhoneNumber: phone,
		Password:    password,
	}, false)
	if err != nil {
		return nil, err
	}

	if err := client.persistToken(ctx, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// # Account

// Me returns the authenticated customer.
func (client *Client) Me(ctx context.Context) (*Payload, error) {
	return client.Request(ctx, http.MethodGet, constants.EndpointMe, nil, true)
}

// Logout revokes the session on the server. It does not touch local state.
func (client *Client) Logout(ctx context.Context) error {
	_, err := client.Request(ctx, http.MethodPost, constants.EndpointLogout, nil, true)
	return err
}

// Profile returns the authenticated customer's profile.
func (client *Client) Profile(ctx context.Context) (*Payload, error) {
	return client.Request(ctx, http.MethodGet, constants.EndpointProfile, nil, true)
}

// UpdateProfile applies the non-nil fields of input.
func (client *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*Payload, error) {
	return client.Request(ctx, http.MethodPut, constants.EndpointProfile, input, true)
}

// # Addresses

// Addresses lists the customer's saved addresses.
func (client *Client) Addresses(ctx context.Context) ([]Address, error) {
	payload, err := client.Request(ctx, http.MethodGet, constants.EndpointAddresses, nil, true)
	if err != nil {
		return nil, err
	}

	addresses := []Address{}
	if len(payload.Data) == 0 {
		return addresses, nil
	}
	if err := payload.Decode(&addresses); err != nil {
		return nil, invalidResponse(err)
	}
	return addresses, nil
}

// Address returns one saved address.
func (client *Client) Address(ctx context.Context, id int64) (*Address, error) {
	payload, err := client.Request(ctx, http.MethodGet, addressPath(id), nil, true)
	if err != nil {
		return nil, err
	}
	return decodeAddress(payload)
}

// CreateAddress saves a new address.
func (client *Client) CreateAddress(ctx context.Context, input AddressInput) (*Address, error) {
	payload, err := client.Request(ctx, http.MethodPost, constants.EndpointAddresses, input, true)
	if err != nil {
		return nil, err
	}
	return decodeAddress(payload)
}

// UpdateAddress replaces a saved address.
func (client *Client) UpdateAddress(ctx context.Context, id int64, input AddressInput) (*Address, error) {
	payload, err := client.Request(ctx, http.MethodPut, addressPath(id), input, true)
	if err != nil {
		return nil, err
	}
	return decodeAddress(payload)
}

// DeleteAddress removes a saved address.
func (client *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := client.Request(ctx, http.MethodDelete, addressPath(id), nil, true)
	return err
}

// # Helpers

func addressPath(id int64) string {
	return constants.EndpointAddresses + "/" + strconv.FormatInt(id, 10)
}

func decodeAddress(payload *Payload) (*Address, error) {
	var address Address
	if err := payload.Decode(&address); err != nil {
		return nil, invalidResponse(err)
	}
	if address.ID == 0 {
		return nil, invalidResponse(fmt.Errorf("api_address_missing"))
	}
	return &address, nil
}

func invalidResponse(cause error) *apperr.AppError {
	return &apperr.AppError{
		Status:  http.StatusOK,
		Code:    "INVALID_RESPONSE",
		Message: "Unexpected response from the server.",
		Cause:   cause,
	}
}
