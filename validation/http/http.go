// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

const (
	// MaxHeaderNameLength is the longest accepted header name in bytes.
	MaxHeaderNameLength = 256

	// MaxHeaderValueLength is the longest accepted header value in bytes.
	MaxHeaderValueLength = 8192
)

// Validation errors.
var (
	ErrInvalidHeader  = errors.New("invalid HTTP header")
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
func ValidateHeaderName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHeader)
	case len(name) > MaxHeaderNameLength:
		return fmt.Errorf("%w: name exceeds maximum length of %d bytes", ErrInvalidHeader, MaxHeaderNameLength)
	case !httpguts.ValidHeaderFieldName(name):
		return fmt.Errorf("%w: name contains invalid characters", ErrInvalidHeader)
	}
	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
func ValidateHeaderValue(value string) error {
	switch {
	case value == "":
		return fmt.Errorf("%w: value cannot be empty", ErrInvalidHeader)
	case len(value) > MaxHeaderValueLength:
		return fmt.Errorf("%w: value exceeds maximum length of %d bytes", ErrInvalidHeader, MaxHeaderValueLength)
	case !httpguts.ValidHeaderFieldValue(value):
		return fmt.Errorf("%w: value contains control characters", ErrInvalidHeader)
	}
	return nil
}

// ValidateHeader validates a header name and value pair.
func ValidateHeader(name, value string) error {
	if err := ValidateHeaderName(name); err != nil {
		return err
	}
	if err := ValidateHeaderValue(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ValidateBaseURL validates an API base URL override. It must be an absolute
// http or https URL with a host and no user info, query or fragment.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidBaseURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	switch {
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		return fmt.Errorf("%w: scheme must be http or https: %s", ErrInvalidBaseURL, raw)
	case parsed.Host == "":
		return fmt.Errorf("%w: must include a host: %s", ErrInvalidBaseURL, raw)
	case parsed.User != nil:
		return fmt.Errorf("%w: must not contain user info: %s", ErrInvalidBaseURL, raw)
	case parsed.RawQuery != "" || parsed.ForceQuery:
		return fmt.Errorf("%w: must not contain a query: %s", ErrInvalidBaseURL, raw)
	case parsed.Fragment != "":
		return fmt.Errorf("%w: must not contain fragments (#): %s", ErrInvalidBaseURL, raw)
	}
	return nil
}
