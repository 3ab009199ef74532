// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package akerror

import (
	"errors"
	"net/http"
)

// Kind identifies the class of an AgeKey failure.
type Kind string

const (
	// KindConfiguration indicates the client was constructed with invalid settings.
	KindConfiguration Kind = "configuration_error"

	// KindInvalidRequest indicates the request was rejected as malformed,
	// either locally before any network activity or by the server.
	KindInvalidRequest Kind = "invalid_request"

	// KindUnauthorizedClient indicates the client credentials were rejected.
	KindUnauthorizedClient Kind = "unauthorized_client"

	// KindAccessDenied indicates the user declined or cancelled the flow.
	KindAccessDenied Kind = "access_denied"

	// KindStateMismatch indicates the callback state did not match (CSRF).
	KindStateMismatch Kind = "state_mismatch"

	// KindNonceMismatch indicates the ID token nonce did not match (replay).
	KindNonceMismatch Kind = "nonce_mismatch"

	// KindInvalidToken indicates a missing, undecodable or expired token, or a
	// token lacking a required claim.
	KindInvalidToken Kind = "invalid_token"

	// KindServerError indicates a server-side failure or a malformed success response.
	KindServerError Kind = "server_error"

	// KindNetworkError indicates a transport-level failure.
	KindNetworkError Kind = "network_error"
)

// Error is the error type returned by the AgeKey SDK.
type Error struct {
	kind      Kind
	err       error
	docURL    string
	oauthCode string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the failure class.
func (e *Error) Kind() Kind {
	return e.kind
}

// DocURL returns the documentation reference attached to the error, if any.
func (e *Error) DocURL() string {
	return e.docURL
}

// OAuthCode returns the raw OAuth error code the error was classified from,
// or the empty string when the error did not originate from the server.
func (e *Error) OAuthCode() string {
	return e.oauthCode
}

// HTTPCode returns the HTTP status a relying party should answer with when
// surfacing this error to its own clients.
func (e *Error) HTTPCode() int {
	switch e.kind {
	case KindConfiguration:
		return http.StatusInternalServerError
	case KindInvalidRequest, KindStateMismatch, KindNonceMismatch, KindInvalidToken:
		return http.StatusBadRequest
	case KindUnauthorizedClient:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindServerError:
		return http.StatusBadGateway
	case KindNetworkError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithDocs returns a copy of the error carrying the given documentation URL.
func (e *Error) WithDocs(url string) *Error {
	cp := *e
	cp.docURL = url
	return &cp
}

// New creates an error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, err: errors.New(message)}
}

// Wrap wraps err as an error of the given kind. The message, when non-empty,
// prefixes the cause's message. If err is nil, Wrap returns nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	if message != "" {
		err = &prefixed{msg: message, err: err}
	}
	return &Error{kind: kind, err: err}
}

type prefixed struct {
	msg string
	err error
}

func (p *prefixed) Error() string { return p.msg + ": " + p.err.Error() }
func (p *prefixed) Unwrap() error { return p.err }

// KindOf extracts the Kind from an error chain.
// It returns the empty Kind if err is nil or contains no *Error.
func KindOf(err error) Kind {
	var akErr *Error
	if errors.As(err, &akErr) {
		return akErr.kind
	}
	return ""
}

// Is reports whether err contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
