// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ory/fosite"
)

// MaxRedirectURILength is the maximum accepted length of a redirect URI.
const MaxRedirectURILength = 2048

// RedirectURIPolicy controls which URI schemes a client may register as its redirect URI.
type RedirectURIPolicy int

const (
	// RedirectURIPolicyStrict allows only https and http-loopback schemes
	// (RFC 8252 Section 8.4). Suitable for web relying parties.
	RedirectURIPolicyStrict RedirectURIPolicy = iota

	// RedirectURIPolicyAllowPrivateSchemes also allows private-use URI schemes
	// such as myapp://callback (RFC 8252 Section 7.1), for native apps that
	// receive the AgeKey callback through an OS handler.
	RedirectURIPolicyAllowPrivateSchemes
)

// ValidateRedirectURI validates the redirect URI a client sends in every
// authorization request, per RFC 6749 Section 3.1.2 and RFC 8252.
//
//   - URI must not exceed MaxRedirectURILength
//   - URI must be absolute and carry no fragment, since callback
//     parameters are read from the query
//   - Scheme must satisfy the policy
func ValidateRedirectURI(uri string, policy RedirectURIPolicy) error {
	if len(uri) > MaxRedirectURILength {
		return fmt.Errorf("redirect_uri too long (maximum %d characters)", MaxRedirectURILength)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid redirect_uri format: %w", err)
	}

	if !fosite.IsValidRedirectURI(parsed) {
		return fmt.Errorf("redirect_uri must be an absolute URI without a fragment")
	}

	var secure bool
	switch policy {
	case RedirectURIPolicyStrict:
		secure = fosite.IsRedirectURISecureStrict(context.Background(), parsed)
	case RedirectURIPolicyAllowPrivateSchemes:
		secure = fosite.IsRedirectURISecure(context.Background(), parsed)
	default:
		return fmt.Errorf("unknown redirect URI policy: %d", policy)
	}
	if !secure {
		if policy == RedirectURIPolicyStrict {
			return fmt.Errorf("redirect_uri must use http (for loopback) or https scheme")
		}
		return fmt.Errorf("redirect_uri must use a secure scheme (https, http for loopback, or a private-use scheme)")
	}

	return nil
}
