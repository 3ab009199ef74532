// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package oauth holds the OAuth 2.0 and OpenID Connect vocabulary spoken by
// the AgeKey SDK: request and callback parameter names, response types,
// scopes, pushed authorization request (RFC 9126) response types, and
// redirect URI validation per RFC 6749 and RFC 8252.
//
// # Scopes
//
//	oauth.Scope(false) // "openid"
//	oauth.Scope(true)  // "openid agekey.upgrade"
//
// # Pushed Authorization Responses
//
//	var resp oauth.PushedAuthorizationResponse
//	if err := json.NewDecoder(body).Decode(&resp); err != nil {
//		// Handle decode error
//	}
//	if err := resp.Validate(); err != nil {
//		// request_uri missing: treat as a server error
//	}
//	expiresIn := resp.EffectiveExpiresIn() // 90 when omitted
//
// # Redirect URI Validation
//
//	// Strict policy: only https and http-loopback
//	err := oauth.ValidateRedirectURI("https://example.com/callback", oauth.RedirectURIPolicyStrict)
//
//	// Allow private-use schemes for native apps
//	err := oauth.ValidateRedirectURI("myapp://callback", oauth.RedirectURIPolicyAllowPrivateSchemes)
package oauth
