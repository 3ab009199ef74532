// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http validates caller-supplied HTTP inputs before the SDK sends them:
extra request headers and API base URL overrides.

# Header Validation

	if err := http.ValidateHeader("X-Request-Source", "checkout"); err != nil {
		// reject the option
	}

Header names must be RFC 7230 tokens of at most 256 bytes. Values must be free
of control characters, including CR and LF, and at most 8192 bytes.

# Base URL Validation

	if err := http.ValidateBaseURL("https://agekey.internal.example.com"); err != nil {
		// reject the configuration
	}

A base URL must use http or https, include a host, and carry no user info,
query or fragment.
*/
package http
