// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads the inputs of a development backend request: the
JSON body, numeric path parameters and the verified caller.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/platform/validate"
	"github.com/taibuivan/shopfront/pkg/convert"
)

// maxBodyBytes bounds a JSON request body.
const maxBodyBytes = 1 << 20

/*
DecodeJSON decodes the request body into target.

The body must be a single JSON value of at most 1 MiB. Unknown fields are
ignored, as the store API does.

Returns:
  - error: validate.ErrInvalidJSON for an empty, oversized or malformed body
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}

	// Trailing data after the value.
	if decoder.More() {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID retrieves a numeric URL parameter. Malformed values read as 0.
func ID(request *http.Request, name string) int64 {
	return convert.ToInt64(chi.URLParam(request, name))
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Unauthenticated.")
	}
	return claims, nil
}

// RequiredUserID returns the id of the authenticated user.
func RequiredUserID(request *http.Request) (int64, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
