// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"crypto/subtle"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/oauth"
	"github.com/CadamTech/agekey-sdk/token"
)

// Validation errors, returned wrapped in an *akerror.Error.
var (
	ErrStateMismatch        = errors.New("state does not match the expected value")
	ErrNonceMismatch        = errors.New("nonce does not match the expected value")
	ErrMissingToken         = errors.New("callback has no id_token")
	ErrMalformedToken       = errors.New("id_token could not be decoded")
	ErrTokenExpired         = errors.New("id_token has expired")
	ErrMissingAgeThresholds = errors.New("id_token has no age_thresholds claim")
)

// Params are the raw callback parameters.
type Params struct {
	IDToken          string
	State            string
	Error            string
	ErrorDescription string
}

// Parse extracts the callback parameters from rawURL without validating them.
// Parameters are read from the query, or from the fragment when the query
// carries none of them.
func Parse(rawURL string) (Params, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Params{}, akerror.Wrap(akerror.KindInvalidRequest, err, "malformed callback URL")
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Params{}, akerror.Wrap(akerror.KindInvalidRequest, err, "malformed callback query")
	}
	if !hasCallbackParams(values) && u.Fragment != "" {
		if frag, err := url.ParseQuery(u.Fragment); err == nil {
			values = frag
		}
	}

	return Params{
		IDToken:          values.Get(oauth.ParamIDToken),
		State:            values.Get(oauth.ParamState),
		Error:            values.Get(oauth.ParamError),
		ErrorDescription: values.Get(oauth.ParamErrorDescription),
	}, nil
}

func hasCallbackParams(v url.Values) bool {
	return v.Has(oauth.ParamIDToken) || v.Has(oauth.ParamState) || v.Has(oauth.ParamError)
}

// Expected holds the values persisted when the authorization URL was built.
type Expected struct {
	State string
	Nonce string
}

// Result is a validated Use-flow outcome.
type Result struct {
	// AgeThresholds maps each requested age, as a decimal string, to whether
	// the user meets it.
	AgeThresholds map[string]bool

	// Subject is the pairwise user identifier, empty when absent.
	Subject string

	// Raw holds every claim of the token.
	Raw token.Claims
}

// Meets reports whether the user meets age. It reports false for an age that
// was not part of the request.
func (r *Result) Meets(age int) bool {
	return r.AgeThresholds[strconv.Itoa(age)]
}

// ValidateUse validates a Use-flow callback against the expected state and
// nonce at time now. An empty expected value never matches.
func ValidateUse(rawURL string, want Expected, now time.Time) (*Result, error) {
	p, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}

	if p.Error != "" {
		return nil, akerror.FromOAuthCode(p.Error, p.ErrorDescription)
	}

	if want.State == "" || !ConstantTimeEqual(p.State, want.State) {
		return nil, akerror.Wrap(akerror.KindStateMismatch, ErrStateMismatch, "")
	}

	if p.IDToken == "" {
		return nil, akerror.Wrap(akerror.KindInvalidToken, ErrMissingToken, "")
	}

	claims, ok := token.Decode(p.IDToken)
	if !ok {
		return nil, akerror.Wrap(akerror.KindInvalidToken, ErrMalformedToken, "")
	}

	nonce, _ := claims.Nonce()
	if want.Nonce == "" || !ConstantTimeEqual(nonce, want.Nonce) {
		return nil, akerror.Wrap(akerror.KindNonceMismatch, ErrNonceMismatch, "")
	}

	if claims.IsExpired(now) {
		return nil, akerror.Wrap(akerror.KindInvalidToken, ErrTokenExpired, "")
	}

	thresholds, ok := claims.AgeThresholds()
	if !ok {
		return nil, akerror.Wrap(akerror.KindInvalidToken, ErrMissingAgeThresholds, "")
	}

	subject, _ := claims.Subject()
	return &Result{
		AgeThresholds: thresholds,
		Subject:       subject,
		Raw:           claims,
	}, nil
}

// CreateResult is the outcome of a Create-flow callback.
type CreateResult struct {
	Success          bool
	Error            string
	ErrorDescription string
	State            string
}

// ParseCreate reads a Create-flow callback. A server error is reported in the
// result rather than returned; only a malformed URL fails.
func ParseCreate(rawURL string) (*CreateResult, error) {
	p, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if p.Error != "" {
		return &CreateResult{Error: p.Error, ErrorDescription: p.ErrorDescription, State: p.State}, nil
	}
	return &CreateResult{Success: true, State: p.State}, nil
}

// ConstantTimeEqual reports whether a and b are equal. The time taken depends
// on the lengths but not on the contents.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
