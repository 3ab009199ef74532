// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/claims"
	"github.com/CadamTech/agekey-sdk/oauth"
	"github.com/CadamTech/agekey-sdk/schema"
	"github.com/CadamTech/agekey-sdk/securetoken"
	"github.com/CadamTech/agekey-sdk/verification"
)

// Client is the client configuration a request is rendered for.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Random is the source of state and nonce values; nil uses crypto/rand.
	Random io.Reader
}

// UseRequest is a rendered Use-flow authorization request. The caller must
// persist State and Nonce to validate the callback.
type UseRequest struct {
	URL   string
	State string
	Nonce string
}

// UseURL renders the Use-flow authorization URL for endpoint.
func UseURL(endpoint string, c Client, useClaims *claims.UseClaims, canCreate bool) (*UseRequest, error) {
	if useClaims == nil {
		return nil, akerror.New(akerror.KindInvalidRequest, "claims are required")
	}
	claimsJSON, err := json.Marshal(useClaims)
	if err != nil {
		return nil, akerror.Wrap(akerror.KindInvalidRequest, err, "failed to encode claims")
	}
	if err := schema.ValidateUseClaims(claimsJSON); err != nil {
		return nil, err
	}

	pair, err := securetoken.NewPair(c.Random)
	if err != nil {
		return nil, akerror.Wrap(akerror.KindConfiguration, err, "failed to generate state and nonce")
	}

	q := url.Values{}
	q.Set(oauth.ParamClientID, c.ClientID)
	q.Set(oauth.ParamRedirectURI, c.RedirectURI)
	q.Set(oauth.ParamResponseType, oauth.ResponseTypeIDToken)
	q.Set(oauth.ParamScope, oauth.Scope(canCreate))
	q.Set(oauth.ParamState, pair.State)
	q.Set(oauth.ParamNonce, pair.Nonce)
	q.Set(oauth.ParamClaims, string(claimsJSON))
	if canCreate {
		q.Set(oauth.ParamCanCreate, strconv.FormatBool(true))
	}

	u, err := withQuery(endpoint, q)
	if err != nil {
		return nil, err
	}
	return &UseRequest{URL: u, State: pair.State, Nonce: pair.Nonce}, nil
}

// PARForm is a rendered pushed authorization request body.
type PARForm struct {
	Values url.Values
	State  string
}

// Encode returns the form-encoded body.
func (f *PARForm) Encode() string {
	return f.Values.Encode()
}

// NewPARForm renders the Create-flow pushed authorization request body. The
// client secret is checked before any randomness is drawn.
func NewPARForm(c Client, detail verification.AuthorizationDetail, upgrade bool) (*PARForm, error) {
	if c.ClientSecret == "" {
		return nil, akerror.New(akerror.KindInvalidRequest,
			"client secret is required to push an authorization request; call this from a server")
	}

	details, err := verification.EncodeDetails(detail)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateAuthorizationDetails([]byte(details)); err != nil {
		return nil, err
	}

	state, err := securetoken.Generate(c.Random, securetoken.DefaultSize)
	if err != nil {
		return nil, akerror.Wrap(akerror.KindConfiguration, err, "failed to generate state")
	}

	v := url.Values{}
	v.Set(oauth.ParamClientID, c.ClientID)
	v.Set(oauth.ParamClientSecret, c.ClientSecret)
	v.Set(oauth.ParamRedirectURI, c.RedirectURI)
	v.Set(oauth.ParamResponseType, oauth.ResponseTypeNone)
	v.Set(oauth.ParamScope, oauth.Scope(upgrade))
	v.Set(oauth.ParamState, state)
	v.Set(oauth.ParamAuthorizationDetails, details)

	return &PARForm{Values: v, State: state}, nil
}

// CreateURL renders the Create-flow authorization URL referencing a pushed request.
func CreateURL(endpoint string, c Client, requestURI string, upgrade bool) (string, error) {
	if requestURI == "" {
		return "", akerror.New(akerror.KindInvalidRequest, "request_uri is required")
	}

	q := url.Values{}
	q.Set(oauth.ParamClientID, c.ClientID)
	q.Set(oauth.ParamRedirectURI, c.RedirectURI)
	q.Set(oauth.ParamResponseType, oauth.ResponseTypeNone)
	q.Set(oauth.ParamScope, oauth.Scope(upgrade))
	q.Set(oauth.ParamRequestURI, requestURI)
	if upgrade {
		q.Set(oauth.ParamCanUpgrade, strconv.FormatBool(true))
	}
	return withQuery(endpoint, q)
}

func withQuery(endpoint string, q url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", akerror.Wrap(akerror.KindConfiguration, err, "invalid endpoint")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
