// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	"github.com/taibuivan/shopfront/internal/platform/middleware"
	"github.com/taibuivan/shopfront/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &sec.AuthClaims{UserID: 7}, nil
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequestID reuses a client ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder := serve(handler, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get("X-Request-ID"))

	serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id", seen)
}

/*
TestAuthenticate lets anonymous requests through and rejects bad tokens.
*/
func TestAuthenticate(t *testing.T) {
	var claims *sec.AuthClaims
	handler := middleware.Authenticate(fakeVerifier{})(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims = ctxutil.GetAuthUser(request.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
		userID int64
	}{
		{name: "anonymous", header: "", status: http.StatusOK},
		{name: "valid", header: "Bearer good", status: http.StatusOK, userID: 7},
		{name: "case insensitive scheme", header: "bearer good", status: http.StatusOK, userID: 7},
		{name: "invalid token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "missing token", header: "Bearer", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := serve(handler, request)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.userID != 0 {
				require.NotNil(t, claims)
				assert.Equal(t, tt.userID, claims.UserID)
			} else {
				assert.Nil(t, claims)
			}
		})
	}
}

/*
TestRequireAuth blocks requests without claims.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.Authenticate(fakeVerifier{})(middleware.RequireAuth(okHandler))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, serve(handler, request).Code)
}

/*
TestRateLimit answers 429 once a client exhausts its burst.
*/
func TestRateLimit(t *testing.T) {
	limiter := middleware.NewLimiter(t.Context(), rate.Every(time.Hour), 2)
	handler := middleware.RateLimit(limiter)(okHandler)

	request := func(ip string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Real-IP", ip)
		return serve(handler, r).Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1"))

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, request("10.0.0.2"))
}

/*
TestPanicRecovery turns a panic into a 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestCORS reflects allowed origins and short-circuits pre-flight requests.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(func(origin string) bool {
		return origin == "http://allowed.test"
	})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "http://allowed.test")
	recorder := serve(handler, request)
	assert.Equal(t, "http://allowed.test", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "http://other.test")
	recorder = serve(handler, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	assert.Equal(t, http.StatusNoContent, serve(handler, request).Code)
}

/*
TestRealIP prefers proxy headers over the remote address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}
