// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values of the development backend
// through [context.Context]: the correlation id, the request logger and the
// verified token claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// key is private so no other package can collide with these entries.
type key int

const (
	keyRequestID key = iota
	keyLogger
	keyClaims
)

// lookup returns the value stored under k, or the zero T.
func lookup[T any](ctx context.Context, k key) T {
	value, _ := ctx.Value(k).(T)
	return value
}

// # Request Tracing

// WithRequestID attaches the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns the request id, or "".
func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, keyRequestID)
}

// # Structured Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request logger, or [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, keyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser attaches the claims of a verified bearer token.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	return lookup[*sec.AuthClaims](ctx, keyClaims)
}
