// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by the development
// backend handlers.
//
// # Architecture
//
// Every success answer carries a `message` next to its payload. The payload
// is either nested under `data` ([Envelope]) or spread at the top level
// ([Flat]); store backends in the wild use both shapes and the storefront
// client accepts either. Errors always use the `{message, code, errors}` shape
// of [apperr.AppError].
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for nested success responses.
type SuccessEnvelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Envelope writes data nested under `data`.
func Envelope(writer http.ResponseWriter, statusCode int, message string, data any) {
	JSON(writer, statusCode, SuccessEnvelope{Message: message, Data: data})
}

// OK writes a 200 OK nested envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	Envelope(writer, http.StatusOK, message, data)
}

// Created writes a 201 Created nested envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	Envelope(writer, http.StatusCreated, message, data)
}

// Flat writes the fields of data at the top level, next to `message`.
//
// data must marshal to a JSON object (a struct or a map). Anything else is
// written nested under `data`.
func Flat(writer http.ResponseWriter, statusCode int, message string, data any) {
	fields := map[string]any{}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil || json.Unmarshal(raw, &fields) != nil {
			Envelope(writer, statusCode, message, data)
			return
		}
	}

	body := make(map[string]any, len(fields)+1)
	maps.Copy(body, fields)
	if message != "" {
		body[constants.FieldMessage] = message
	}
	JSON(writer, statusCode, body)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	status := appError.Status
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, status, appError)
}
