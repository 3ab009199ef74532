// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package akerror provides the typed error returned by every AgeKey SDK operation.

Each error carries a machine-readable [Kind], a human-readable message, an
optional documentation reference and an optional underlying cause. The type
implements the standard error interface and supports errors.Is() and
errors.As() through Unwrap.

# Basic Usage

Create errors of a given kind:

	err := akerror.New(akerror.KindInvalidRequest, "client secret is required")

	// Wrap a lower-level cause
	err := akerror.Wrap(akerror.KindNetworkError, cause, "PAR request failed")

# Inspecting Errors

	switch akerror.KindOf(err) {
	case akerror.KindAccessDenied:
		// the user declined
	case akerror.KindStateMismatch, akerror.KindNonceMismatch:
		// treat as an attack, do not retry
	}

	var akErr *akerror.Error
	if errors.As(err, &akErr) {
		http.Error(w, akErr.Error(), akErr.HTTPCode())
	}

# OAuth Error Codes

Error codes received from the authorization server, either as redirect
parameters or in a JSON error body, are classified with [FromOAuthCode] and
[FromHTTPStatus].
*/
package akerror
