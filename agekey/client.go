// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package agekey

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=client.go -destination=mocks/mock_http_client.go -package=mocks HTTPClient

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/environment"
	"github.com/CadamTech/agekey-sdk/logging"
	"github.com/CadamTech/agekey-sdk/metrics"
	"github.com/CadamTech/agekey-sdk/oauth"
	"github.com/CadamTech/agekey-sdk/request"
	validationhttp "github.com/CadamTech/agekey-sdk/validation/http"
)

// Version is the SDK version reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent is sent with every pushed authorization request.
const DefaultUserAgent = "agekey-sdk-go/" + Version

// HTTPClient sends pushed authorization requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config identifies a relying party to AgeKey.
type Config struct {
	// ClientID is the public client identifier, prefixed ak_test_ or ak_live_.
	ClientID string `yaml:"client_id"`

	// ClientSecret is required for the Create flow only, prefixed sk_test_ or sk_live_.
	ClientSecret string `yaml:"client_secret"`

	// RedirectURI receives the callback of both flows.
	RedirectURI string `yaml:"redirect_uri"`

	// APIBaseURL replaces the environment's base URL when set.
	APIBaseURL string `yaml:"api_base_url"`
}

// Client is an AgeKey client. It is immutable after New and safe for
// concurrent use.
type Client struct {
	cfg Config
	env environment.Resolved

	httpClient     HTTPClient
	random         io.Reader
	now            func() time.Time
	logger         *slog.Logger
	metrics        *metrics.Metrics
	userAgent      string
	headers        http.Header
	redirectPolicy oauth.RedirectURIPolicy
}

// New validates cfg and returns a client. All failures are
// akerror.KindConfiguration and are raised before any network activity.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:            cfg,
		httpClient:     http.DefaultClient,
		now:            time.Now,
		logger:         logging.Discard(),
		userAgent:      DefaultUserAgent,
		headers:        http.Header{},
		redirectPolicy: oauth.RedirectURIPolicyStrict,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, akerror.Wrap(akerror.KindConfiguration, err, "invalid option")
		}
	}

	if cfg.ClientID == "" {
		return nil, akerror.New(akerror.KindConfiguration, "client id is required")
	}
	if cfg.RedirectURI == "" {
		return nil, akerror.New(akerror.KindConfiguration, "redirect URI is required")
	}
	if err := oauth.ValidateRedirectURI(cfg.RedirectURI, c.redirectPolicy); err != nil {
		return nil, akerror.Wrap(akerror.KindConfiguration, err, "")
	}
	if cfg.APIBaseURL != "" {
		if err := validationhttp.ValidateBaseURL(cfg.APIBaseURL); err != nil {
			return nil, akerror.Wrap(akerror.KindConfiguration, err, "")
		}
	}

	env, err := environment.Resolve(cfg.ClientID, cfg.ClientSecret, cfg.APIBaseURL)
	if err != nil {
		return nil, akerror.Wrap(akerror.KindConfiguration, err, "")
	}
	c.env = env

	c.logger.Debug("agekey client configured", "test_environment", env.IsTest, "base_url", env.BaseURL)
	return c, nil
}

// Environment returns the resolved endpoints.
func (c *Client) Environment() environment.Resolved {
	return c.env
}

// IsTest reports whether the client targets the test environment.
func (c *Client) IsTest() bool {
	return c.env.IsTest
}

// Use returns the Use flow.
func (c *Client) Use() *UseFlow {
	return &UseFlow{c: c}
}

// Create returns the Create flow.
func (c *Client) Create() *CreateFlow {
	return &CreateFlow{c: c}
}

func (c *Client) requestClient() request.Client {
	return request.Client{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURI:  c.cfg.RedirectURI,
		Random:       c.random,
	}
}

// outcome is the metrics label for err.
func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if kind := akerror.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}
