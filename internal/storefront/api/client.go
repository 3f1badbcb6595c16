// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the storefront's HTTP client for the store REST API.

# Architecture

  - Transport: resty, one client per process, JSON in and out.
  - Errors: every failure leaves as an [apperr.AppError]. Status 0 means the
    server could not be reached; any other status is the server's answer.
  - Session side effects: a 401 on an authenticated call removes the stored
    token and fires the [Client.OnUnauthorized] hook; login and OTP
    verification store the returned token.
  - Normalization: success bodies go through [Normalize] exactly once, here.
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// TokenStore is the persistence contract the client needs for the bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context) error
}

// Options configures a [Client].
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// Client performs store API calls.
//
// # Concurrency
//
// Client is safe for concurrent use.
type Client struct {
	http   *resty.Client
	tokens TokenStore
	logger *slog.Logger

	unauthorized atomic.Pointer[func(ctx context.Context)]
}

// New constructs a [Client].
func New(options Options, tokens TokenStore, logger *slog.Logger) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultAPIBaseURL
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = constants.AppName + "/" + constants.AppVersion
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader(constants.HeaderAccept, constants.ContentTypeJSON).
		SetHeader("User-Agent", userAgent).
		SetLogger(&restyLogger{logger: logger}).
		SetDisableWarn(true)

	if options.Timeout > 0 {
		httpClient.SetTimeout(options.Timeout)
	}

	if options.Transport != nil {
		httpClient.SetTransport(options.Transport)
	}

	return &Client{http: httpClient, tokens: tokens, logger: logger}
}

// OnUnauthorized registers fn to run after a 401 on an authenticated call
// has removed the token. A later call replaces the previous hook.
func (client *Client) OnUnauthorized(fn func(ctx context.Context)) {
	client.unauthorized.Store(&fn)
}

// # Core Request

/*
Request performs one API call.

Description: Sends a JSON request, attaching the bearer token only when
includeAuth is set and a token exists. A non-2xx answer becomes an
[apperr.AppError] built from the server's `{message, errors}`; a 401 on an
authenticated call also removes the stored token and runs the unauthorized
hook. A transport failure becomes
an [apperr.AppError] with status 0.

Parameters:
  - ctx: context.Context
  - method: HTTP method
  - endpoint: path relative to the base URL
  - body: request body, or nil
  - includeAuth: attach the bearer token

Returns:
  - *Payload: Normalized success body
  - error: *apperr.AppError
*/
func (client *Client) Request(ctx context.Context, method, endpoint string, body any, includeAuth bool) (*Payload, error) {
	request := client.http.R().
		SetContext(ctx).
		SetHeader(constants.HeaderContentType, constants.ContentTypeJSON)

	if body != nil {
		request.SetBody(body)
	}

	if includeAuth {
		if bearer, ok := client.tokens.Token(ctx); ok {
			request.SetAuthToken(bearer)
		}
	}

	startTime := time.Now()
	response, err := request.Execute(method, endpoint)
	if err != nil {
		client.logger.Warn("api_request_unreachable",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Any("error", err),
		)
		return nil, apperr.Network(err)
	}

	status := response.StatusCode()
	client.logger.Debug("api_request_finished",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", status),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		appError := apperr.FromResponse(status, response.Body())

		// The server no longer honours this session.
		if includeAuth && status == http.StatusUnauthorized {
			if err := client.tokens.RemoveToken(ctx); err != nil {
				client.logger.Warn("api_token_clear_failed", slog.Any("error", err))
			}
			if hook := client.unauthorized.Load(); hook != nil && *hook != nil {
				(*hook)(ctx)
			}
		}

		return nil, appError
	}

	payload, err := Normalize(response.Body())
	if err != nil {
		client.logger.Warn("api_response_unreadable",
			slog.String("endpoint", endpoint),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		return nil, &apperr.AppError{
			Status:  status,
			Code:    "INVALID_RESPONSE",
			Message: "Unexpected response from the server.",
			Cause:   err,
		}
	}

	return payload, nil
}

// persistToken stores the token carried by payload, if any.
func (client *Client) persistToken(ctx context.Context, payload *Payload) error {
	if payload == nil || payload.Token == "" {
		return nil
	}
	if err := client.tokens.SetToken(ctx, payload.Token); err != nil {
		return fmt.Errorf("api_token_persist_failed: %w", err)
	}
	return nil
}

// # Logging Bridge

// restyLogger routes resty's internal messages into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (bridge *restyLogger) Errorf(format string, v ...interface{}) {
	bridge.logger.Error("resty_error", slog.String("detail", fmt.Sprintf(format, v...)))
}

func (bridge *restyLogger) Warnf(format string, v ...interface{}) {
	bridge.logger.Warn("resty_warning", slog.String("detail", fmt.Sprintf(format, v...)))
}

func (bridge *restyLogger) Debugf(format string, v ...interface{}) {
	bridge.logger.Debug("resty_debug", slog.String("detail", fmt.Sprintf(format, v...)))
}
