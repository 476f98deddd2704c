// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters, JSON bodies and the
authenticated caller from HTTP requests.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
	"github.com/taibuivan/cookbook/internal/platform/ctxutil"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ResourceID retrieves a named UUID path parameter.

Parameters:
  - request: *http.Request
  - name: string (Route parameter name, e.g. "id")
  - resource: string (Resource label used in the NotFound message)

Returns:
  - string: Canonical lowercase UUID
  - error: apperr.NotFound when the value is not a UUID (no row can match it)
*/
func ResourceID(request *http.Request, name, resource string) (string, error) {
	parsed, err := uuid.Parse(chi.URLParam(request, name))
	if err != nil {
		return "", apperr.NotFound(resource)
	}
	return parsed.String(), nil
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
