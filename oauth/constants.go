// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

// Authorization request parameters as defined by RFC 6749, OpenID Connect Core 1.0,
// RFC 9126 (PAR) and RFC 9396 (Rich Authorization Requests).
const (
	ParamClientID             = "client_id"
	ParamClientSecret         = "client_secret"
	ParamRedirectURI          = "redirect_uri"
	ParamResponseType         = "response_type"
	ParamScope                = "scope"
	ParamState                = "state"
	ParamNonce                = "nonce"
	ParamClaims               = "claims"
	ParamRequestURI           = "request_uri"
	ParamAuthorizationDetails = "authorization_details"
)

// AgeKey extension parameters.
const (
	// ParamCanCreate lets a Use request fall through to creating an AgeKey
	// when the user has none.
	ParamCanCreate = "can_create"

	// ParamCanUpgrade lets a Create request upgrade an existing AgeKey.
	ParamCanUpgrade = "can_upgrade"
)

// Callback parameters returned on the redirect URI.
const (
	ParamIDToken          = "id_token"
	ParamError            = "error"
	ParamErrorDescription = "error_description"
)

// Response types as defined by OAuth 2.0 Multiple Response Type Encoding Practices.
const (
	// ResponseTypeIDToken returns an ID token directly on the redirect (Use flow).
	ResponseTypeIDToken = "id_token"

	// ResponseTypeNone returns no credential on the redirect (Create flow).
	ResponseTypeNone = "none"
)

// Scopes requested from AgeKey.
const (
	// ScopeOpenID is the base OpenID Connect scope.
	ScopeOpenID = "openid"

	// ScopeUpgrade enables the create-on-demand and upgrade behaviours.
	ScopeUpgrade = "agekey.upgrade"
)

// ContentTypeForm is the content type of a pushed authorization request body.
const ContentTypeForm = "application/x-www-form-urlencoded"

// DefaultPARExpiresIn is the request_uri lifetime in seconds assumed when the
// PAR response omits expires_in (RFC 9126 Section 2.2 example value).
const DefaultPARExpiresIn = 90

// Scope returns the scope string, with the upgrade scope appended when upgrade is set.
func Scope(upgrade bool) string {
	if upgrade {
		return ScopeOpenID + " " + ScopeUpgrade
	}
	return ScopeOpenID
}
