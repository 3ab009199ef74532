// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import "errors"

// Validation errors for authorization server responses.
var (
	// ErrMissingRequestURI indicates a PAR success response without request_uri.
	ErrMissingRequestURI = errors.New("missing request_uri")
)
