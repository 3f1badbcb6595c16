// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared by the
storefront client and the development backend.

Categories:

  - Endpoints: Relative paths of the store REST API.
  - Storage: Logical keys of the persisted client slots.
  - Notifications: Default toast durations and limits.
  - Server Timing: Timeouts for the development backend.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shopfront"
	AppVersion = "0.1.0-dev"
)

// # Store API Endpoints

const (
	// DefaultAPIBaseURL is the versioned API root of a local store backend.
	DefaultAPIBaseURL = "http://localhost:8000/api/v1"

	EndpointRegister  = "/store/auth/register"
	EndpointSendOTP   = "/store/auth/send-otp"
	EndpointVerifyOTP = "/store/auth/verify-otp"
	EndpointLogin     = "/store/auth/login"

	EndpointMe        = "/store/account/me"
	EndpointLogout    = "/store/account/logout"
	EndpointProfile   = "/store/account/profile"
	EndpointAddresses = "/store/account/addresses"
)

// # Persisted Slots

const (
	// StorageKeyToken holds the raw bearer token.
	StorageKeyToken = "auth_token"

	// StorageKeyUser holds the last known user snapshot (JSON).
	StorageKeyUser = "auth_user"

	// StorageKeyCart holds the serialized cart entries (JSON).
	StorageKeyCart = "cart"

	// StorageKeyTheme holds the UI theme preference.
	StorageKeyTheme = "theme"

	// StorageKeyLocale holds the last-selected locale tag.
	StorageKeyLocale = "locale"
)

// # Notifications

const (
	// ToastRemoveDelay is how long a dismissed toast stays mounted for its exit animation.
	ToastRemoveDelay = 1 * time.Second

	// ToastLimit is the maximum number of toasts kept in the queue.
	ToastLimit = 20

	ToastDurationBlank   = 4 * time.Second
	ToastDurationSuccess = 2 * time.Second
	ToastDurationError   = 4 * time.Second
	ToastDurationCustom  = 4 * time.Second
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often idle limiter entries are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is how long an idle limiter entry is kept.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in development backend tokens.
	AuthIssuer = "shopfront.devapi"

	// OTPLength is the number of digits of a one-time password.
	OTPLength = 6

	// OTPTTL is how long a sent one-time password stays valid.
	OTPTTL = 5 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"

	ContentTypeJSON = "application/json"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMessage = "message"
	FieldErrors  = "errors"
	FieldUser    = "user"
	FieldToken   = "token"
	FieldStatus  = "status"
)
