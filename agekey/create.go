// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package agekey

import (
	"context"
	"time"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/callback"
	"github.com/CadamTech/agekey-sdk/metrics"
	"github.com/CadamTech/agekey-sdk/request"
	"github.com/CadamTech/agekey-sdk/verification"
)

// CreateOptions describes a verification to push to AgeKey.
type CreateOptions struct {
	Detail verification.AuthorizationDetail

	// EnableUpgrade lets the verification upgrade an existing AgeKey.
	EnableUpgrade bool
}

// PARResult is the outcome of a pushed authorization request.
type PARResult struct {
	RequestURI string
	// ExpiresIn is the request URI lifetime in seconds.
	ExpiresIn int
	// State was sent with the request and comes back on the callback.
	State string
}

// InitiateResult is a pushed request together with the URL that redeems it.
type InitiateResult struct {
	URL        string
	RequestURI string
	ExpiresIn  int
	State      string
}

// CreateFlow stores a relying party's verification as an AgeKey.
type CreateFlow struct {
	c *Client
}

// PushAuthorizationRequest pushes the verification and returns the request
// URI to redirect with. It needs the client secret, which is checked before
// any other work.
func (f *CreateFlow) PushAuthorizationRequest(ctx context.Context, opts CreateOptions) (*PARResult, error) {
	if f.c.cfg.ClientSecret == "" {
		return nil, akerror.New(akerror.KindInvalidRequest,
			"client secret is required to push an authorization request; call this from a server")
	}

	form, err := request.NewPARForm(f.c.requestClient(), opts.Detail, opts.EnableUpgrade)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := f.c.pushAuthorizationRequest(ctx, form)
	f.c.metrics.ObservePAR(outcome(err), time.Since(start))
	if err != nil {
		f.c.logger.WarnContext(ctx, "pushed authorization request failed", "kind", akerror.KindOf(err))
		return nil, err
	}

	return &PARResult{
		RequestURI: resp.RequestURI,
		ExpiresIn:  resp.EffectiveExpiresIn(),
		State:      form.State,
	}, nil
}

// AuthorizationURL builds the URL that redeems a pushed request.
func (f *CreateFlow) AuthorizationURL(requestURI string, enableUpgrade bool) (string, error) {
	u, err := request.CreateURL(f.c.env.CreateEndpoint, f.c.requestClient(), requestURI, enableUpgrade)
	if err != nil {
		return "", err
	}
	f.c.metrics.IncAuthorizationURL(metrics.FlowCreate)
	return u, nil
}

// HandleCallback reads the Create-flow callback. A server-reported error is
// returned in the result, not as an error.
func (f *CreateFlow) HandleCallback(callbackURL string) (*callback.CreateResult, error) {
	res, err := callback.ParseCreate(callbackURL)
	switch {
	case err != nil:
		f.c.metrics.IncCallback(metrics.FlowCreate, outcome(err))
		return nil, err
	case res.Success:
		f.c.metrics.IncCallback(metrics.FlowCreate, metrics.OutcomeSuccess)
	default:
		f.c.metrics.IncCallback(metrics.FlowCreate, string(akerror.FromOAuthCode(res.Error, "").Kind()))
		f.c.logger.Info("create callback reported an error", "error", res.Error)
	}
	return res, nil
}

// Initiate pushes the verification and builds the redirect URL in one call.
func (f *CreateFlow) Initiate(ctx context.Context, opts CreateOptions) (*InitiateResult, error) {
	par, err := f.PushAuthorizationRequest(ctx, opts)
	if err != nil {
		return nil, err
	}
	u, err := f.AuthorizationURL(par.RequestURI, opts.EnableUpgrade)
	if err != nil {
		return nil, err
	}
	return &InitiateResult{
		URL:        u,
		RequestURI: par.RequestURI,
		ExpiresIn:  par.ExpiresIn,
		State:      par.State,
	}, nil
}
