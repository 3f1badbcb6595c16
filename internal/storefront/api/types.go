// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

// # Account Entities

// User is the customer snapshot returned by the store API.
//
// The same shape is cached locally so an authenticated session survives a
// network outage.
type User struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	PhoneNumber     string  `json:"phone_number"`
	Email           string  `json:"email,omitempty"`
	WhatsappNumber  string  `json:"whatsapp_number,omitempty"`
	Role            string  `json:"role,omitempty"`
	PhoneVerifiedAt *string `json:"phone_verified_at"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// IsPhoneVerified reports whether the backend recorded a phone verification.
func (user *User) IsPhoneVerified() bool {
	return user != nil && user.PhoneVerifiedAt != nil && *user.PhoneVerifiedAt != ""
}

// Address is a saved delivery address of the customer.
type Address struct {
	ID            int64  `json:"id"`
	Label         string `json:"label"`
	RecipientName string `json:"recipient_name"`
	PhoneNumber   string `json:"phone_number"`
	AddressLine   string `json:"address_line"`
	Area          string `json:"area,omitempty"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code,omitempty"`
	IsDefault     bool   `json:"is_default"`
}

// # Request Payloads

// RegisterInput is the body of POST /store/auth/register.
type RegisterInput struct {
	Name                 string `json:"name"`
	PhoneNumber          string `json:"phone_number"`
	Email                string `json:"email,omitempty"`
	WhatsappNumber       string `json:"whatsapp_number,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ProfileInput is the body of PUT /store/account/profile.
// Nil fields are left unchanged by the backend.
type ProfileInput struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
}

// AddressInput is the body of address create and update calls.
type AddressInput struct {
	Label         string `json:"label"`
	RecipientName string `json:"recipient_name"`
	PhoneNumber   string `json:"phone_number"`
	AddressLine   string `json:"address_line"`
	Area          string `json:"area,omitempty"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code,omitempty"`
	IsDefault     bool   `json:"is_default"`
}

type phoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}
