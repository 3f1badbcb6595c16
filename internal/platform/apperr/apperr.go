// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type exchanged with the store API.

The same [AppError] travels in both directions: the development backend renders
it as a `{message, errors}` envelope, and the storefront API client rebuilds it
from that envelope (or from a transport failure) on the way back.

Taxonomy:

  - Status 0: the server could not be reached. Recoverable locally only where
    cached data exists.
  - Status 401: the session is invalid. Always session-invalidating.
  - Status 422: field validation. Errors carries per-field messages.
  - Anything else: a generic failure surfaced by its message.
*/
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusNetwork is the status of an error built from a transport failure.
const StatusNetwork = 0

// Messages used when the server did not provide one.
const (
	MessageNetwork = "Unable to reach the server. Please check your connection."
	MessageUnknown = "Something went wrong. Please try again."
)

// AppError is the canonical error type for store API calls.
//
// # Security
//
// The Cause field is for local logging only and is never serialized.
type AppError struct {
	// Status is the HTTP status code, or [StatusNetwork] for transport failures.
	Status int `json:"-"`
	// Code is a machine-readable error identifier (e.g. "UNAUTHORIZED").
	Code string `json:"code,omitempty"`
	// Message is a human-readable description safe to show to a user.
	Message string `json:"message"`
	// Errors holds per-field validation messages. Present only for 422.
	Errors map[string][]string `json:"errors,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Status == StatusNetwork {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// FieldError returns the first validation message for field, or "".
func (e *AppError) FieldError(field string) string {
	if messages := e.Errors[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// # Transport Errors

// Network creates a status-0 [AppError] for an unreachable server.
func Network(cause error) *AppError {
	return &AppError{
		Status:  StatusNetwork,
		Code:    "NETWORK_ERROR",
		Message: MessageNetwork,
		Cause:   cause,
	}
}

// FromResponse rebuilds an [AppError] from a non-2xx response body.
//
// The server-provided message and errors are used when present. Errors is
// kept only for 422 responses.
func FromResponse(status int, body []byte) *AppError {
	var envelope struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Code    string              `json:"code"`
		Errors  map[string][]string `json:"errors"`
	}

	// A body that is not JSON still yields a usable error.
	_ = json.Unmarshal(body, &envelope)

	message := strings.TrimSpace(envelope.Message)
	if message == "" {
		message = strings.TrimSpace(envelope.Error)
	}
	if message == "" {
		message = defaultMessage(status)
	}

	appError := &AppError{
		Status:  status,
		Code:    envelope.Code,
		Message: message,
	}
	if appError.Code == "" {
		appError.Code = codeFor(status)
	}
	if status == http.StatusUnprocessableEntity && len(envelope.Errors) > 0 {
		appError.Errors = envelope.Errors
	}
	return appError
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Address") // Returns "Address not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: msg,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: msg,
	}
}

// Validation creates a 422 [AppError] carrying per-field messages.
func Validation(msg string, errors map[string][]string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Errors:  errors,
	}
}

// BadRequest creates a 400 [AppError] for malformed payloads.
func BadRequest(msg string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: msg,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Status:  http.StatusTooManyRequests,
		Code:    "RATE_LIMITED",
		Message: fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected error.
// The cause is kept for logging but is never serialized.
func Internal(cause error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNetwork reports whether err is a transport failure (status 0).
func IsNetwork(err error) bool {
	ae := As(err)
	return ae != nil && ae.Status == StatusNetwork
}

// IsUnauthorized reports whether err is a 401.
func IsUnauthorized(err error) bool {
	ae := As(err)
	return ae != nil && ae.Status == http.StatusUnauthorized
}

// IsValidation reports whether err is a 422 carrying field errors.
func IsValidation(err error) bool {
	ae := As(err)
	return ae != nil && ae.Status == http.StatusUnprocessableEntity && len(ae.Errors) > 0
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.Status == http.StatusNotFound
}

// Message returns a user-facing message for any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if ae := As(err); ae != nil && ae.Message != "" {
		return ae.Message
	}
	return MessageUnknown
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= 500 {
		return "SERVER_ERROR"
	}
	return "HTTP_ERROR"
}

func defaultMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return MessageUnknown
}
