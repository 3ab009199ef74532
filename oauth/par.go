// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

// PushedAuthorizationResponse is the success response of a pushed authorization
// request per RFC 9126 Section 2.2.
type PushedAuthorizationResponse struct {
	// RequestURI references the pushed parameters (REQUIRED).
	RequestURI string `json:"request_uri"`

	// ExpiresIn is the lifetime of the request URI in seconds (REQUIRED by the RFC,
	// defaulted by clients when absent).
	ExpiresIn int `json:"expires_in,omitempty"`
}

// Validate checks the required request_uri is present.
func (r *PushedAuthorizationResponse) Validate() error {
	if r.RequestURI == "" {
		return ErrMissingRequestURI
	}
	return nil
}

// EffectiveExpiresIn returns ExpiresIn, or DefaultPARExpiresIn when unset.
func (r *PushedAuthorizationResponse) EffectiveExpiresIn() int {
	if r.ExpiresIn <= 0 {
		return DefaultPARExpiresIn
	}
	return r.ExpiresIn
}

// ErrorResponse is an OAuth 2.0 error body per RFC 6749 Section 5.2.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}
