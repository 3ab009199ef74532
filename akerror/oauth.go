// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package akerror

import (
	"errors"
	"fmt"
	"net/http"
)

// OAuth 2.0 and OIDC error codes recognised by the classifier (RFC 6749 Section 4.1.2.1).
const (
	codeInvalidRequest         = "invalid_request"
	codeUnauthorizedClient     = "unauthorized_client"
	codeAccessDenied           = "access_denied"
	codeServerError            = "server_error"
	codeTemporarilyUnavailable = "temporarily_unavailable"
)

// FromOAuthCode classifies an OAuth error code received from the authorization
// server. Unknown codes are reported as KindInvalidRequest; the raw code stays
// available through OAuthCode.
func FromOAuthCode(code, description string) *Error {
	kind := classify(code)
	if kind == "" {
		kind = KindInvalidRequest
	}
	msg := description
	if msg == "" {
		msg = code
	}
	return &Error{kind: kind, err: errors.New(msg), oauthCode: code}
}

// FromHTTPStatus classifies a failed HTTP exchange. An OAuth error code in the
// response body wins over the status; otherwise 401 maps to
// KindUnauthorizedClient, 5xx to KindServerError and anything else to
// KindInvalidRequest.
func FromHTTPStatus(status int, code, description string) *Error {
	if classify(code) != "" {
		return FromOAuthCode(code, description)
	}

	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorizedClient
	case status >= http.StatusInternalServerError:
		kind = KindServerError
	default:
		kind = KindInvalidRequest
	}

	msg := description
	if msg == "" {
		msg = fmt.Sprintf("authorization server responded with HTTP %d", status)
	}
	return &Error{kind: kind, err: errors.New(msg), oauthCode: code}
}

func classify(code string) Kind {
	switch code {
	case codeInvalidRequest:
		return KindInvalidRequest
	case codeUnauthorizedClient:
		return KindUnauthorizedClient
	case codeAccessDenied:
		return KindAccessDenied
	case codeServerError, codeTemporarilyUnavailable:
		return KindServerError
	default:
		return ""
	}
}
