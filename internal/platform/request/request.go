// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artdex/internal/platform/apperr"
	"github.com/taibuivan/artdex/internal/platform/ctxutil"
	"github.com/taibuivan/artdex/internal/platform/sec"
	"github.com/taibuivan/artdex/internal/platform/validate"
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
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter and parses it as a positive integer ID.

Returns:
  - int: The parsed identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}

	return id, nil
}

/*
Claims extracts the authenticated editor claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.EditorClaims {
	return ctxutil.GetEditor(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the editor claims.

Returns:
  - *sec.EditorClaims: The authenticated editor claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.EditorClaims, error) {

	// Get editor claims
	claims := ctxutil.GetEditor(request.Context())

	// If the editor is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredEditorID returns the Editor ID of the currently logged-in editor.

Returns:
  - string: Editor identifier
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredEditorID(request *http.Request) (string, error) {

	// Get editor claims
	claims, err := RequiredClaims(request)

	// If the editor is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.EditorID, nil
}
