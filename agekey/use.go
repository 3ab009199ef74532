// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package agekey

import (
	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/callback"
	"github.com/CadamTech/agekey-sdk/claims"
	"github.com/CadamTech/agekey-sdk/metrics"
	"github.com/CadamTech/agekey-sdk/request"
)

// UseOptions describes a Use-flow authorization request.
type UseOptions struct {
	claims.Options

	// EnableCreate lets a user without an AgeKey create one during the flow.
	EnableCreate bool
}

// UseFlow verifies a user's age with an existing AgeKey.
type UseFlow struct {
	c *Client
}

// AuthorizationURL builds the URL to redirect the user to, with a fresh state
// and nonce the caller must persist for HandleCallback.
func (f *UseFlow) AuthorizationURL(opts UseOptions) (*request.UseRequest, error) {
	useClaims, err := claims.Build(opts.Options)
	if err != nil {
		return nil, err
	}

	req, err := request.UseURL(f.c.env.UseEndpoint, f.c.requestClient(), useClaims, opts.EnableCreate)
	if err != nil {
		return nil, err
	}

	f.c.metrics.IncAuthorizationURL(metrics.FlowUse)
	f.c.logger.Debug("built use authorization url",
		"thresholds", len(useClaims.AgeThresholds),
		"enable_create", opts.EnableCreate,
	)
	return req, nil
}

// HandleCallback validates the callback URL against the persisted state and
// nonce. The outcome depends only on its inputs and the client clock.
func (f *UseFlow) HandleCallback(callbackURL string, expected callback.Expected) (*callback.Result, error) {
	result, err := callback.ValidateUse(callbackURL, expected, f.c.now())
	f.c.metrics.IncCallback(metrics.FlowUse, outcome(err))
	if err != nil {
		f.c.logger.Warn("use callback rejected", "kind", akerror.KindOf(err))
		return nil, err
	}
	f.c.logger.Debug("use callback accepted", "thresholds", len(result.AgeThresholds))
	return result, nil
}

// ParseCallback returns the raw callback parameters without validation.
func (*UseFlow) ParseCallback(callbackURL string) (callback.Params, error) {
	return callback.Parse(callbackURL)
}
