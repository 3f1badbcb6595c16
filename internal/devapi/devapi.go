// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package devapi is an in-memory stand-in for the store REST API.

It serves the same paths and envelopes as the production backend so the
storefront can be developed and tested without one:

  - POST /api/v1/store/auth/{register,send-otp,verify-otp,login}
  - GET /api/v1/store/account/me, POST /api/v1/store/account/logout
  - GET|PUT /api/v1/store/account/profile
  - /api/v1/store/account/addresses[/{id}] (list, create, show, update, delete)

Success bodies are `{message, data}` or, with [Options.FlatEnvelope], the data
fields spread next to `message`. Errors are `{message, code, errors}`.

OTP codes are written to the log. Set [Options.FixedOTP] for a predictable
code.
*/
package devapi

import (
	"time"

	"github.com/taibuivan/shopfront/internal/platform/config"
)

// Options configures the development backend.
type Options struct {
	TokenTTL     time.Duration
	FixedOTP     string
	FlatEnvelope bool
	OTPPerMinute int
	Seed         bool
}

// OptionsFromConfig maps the DEVAPI_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TokenTTL:     cfg.DevAPITokenTTL,
		FixedOTP:     cfg.DevAPIFixedOTP,
		FlatEnvelope: cfg.DevAPIFlatEnvelope,
		OTPPerMinute: cfg.DevAPIOTPPerMinute,
		Seed:         cfg.DevAPISeed,
	}
}

// Demo account created when seeding is on.
const (
	DemoName     = "Demo Customer"
	DemoPhone    = "01700000000"
	DemoPassword = "secret123"
)

// JSON field names used in validation errors.
const (
	fieldName           = "name"
	fieldPhoneNumber    = "phone_number"
	fieldEmail          = "email"
	fieldWhatsappNumber = "whatsapp_number"
	fieldPassword       = "password"
	fieldOTP            = "otp"
	fieldLabel          = "label"
	fieldRecipientName  = "recipient_name"
	fieldAddressLine    = "address_line"
	fieldCity           = "city"
)

// Length limits.
const (
	minPasswordLength    = 6
	maxNameLength        = 255
	maxAddressLineLength = 500
)
