// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package agekey

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/CadamTech/agekey-sdk/metrics"
	"github.com/CadamTech/agekey-sdk/oauth"
	validationhttp "github.com/CadamTech/agekey-sdk/validation/http"
)

// Option configures a Client.
type Option func(*Client) error

// reservedHeaders are set by the client on every pushed authorization request.
var reservedHeaders = []string{"Content-Type", "Content-Length", "Host", "Accept"}

// WithHTTPClient sets the transport for pushed authorization requests. The
// client enforces no timeout of its own.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithRandom sets the source of state and nonce values. It must be
// cryptographically secure outside tests. The default is crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(c *Client) error {
		c.random = r
		return nil
	}
}

// WithClock sets the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// WithLogger sets the logger. The client logs nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMetrics records flow counters into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// WithUserAgent replaces the User-Agent sent with pushed authorization requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if err := validationhttp.ValidateHeaderValue(ua); err != nil {
			return fmt.Errorf("user agent: %w", err)
		}
		c.userAgent = ua
		return nil
	}
}

// WithHeader adds a header to every pushed authorization request.
func WithHeader(name, value string) Option {
	return func(c *Client) error {
		if err := validationhttp.ValidateHeader(name, value); err != nil {
			return err
		}
		canonical := http.CanonicalHeaderKey(name)
		if slices.Contains(reservedHeaders, canonical) {
			return fmt.Errorf("header %s is set by the client", canonical)
		}
		c.headers.Add(canonical, value)
		return nil
	}
}

// WithRedirectURIPolicy sets which redirect URI schemes are accepted. The
// default allows https and http on loopback only.
func WithRedirectURIPolicy(p oauth.RedirectURIPolicy) Option {
	return func(c *Client) error {
		c.redirectPolicy = p
		return nil
	}
}
