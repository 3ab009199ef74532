// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/claims"
	"github.com/CadamTech/agekey-sdk/verification"
)

const useEndpoint = "https://api-test.agekey.org/v1/oidc/use"

// failingReader never yields randomness.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func testClient() Client {
	return Client{
		ClientID:     "ak_test_client",
		ClientSecret: "sk_test_secret",
		RedirectURI:  "https://shop.example.com/agekey/callback",
		Random:       bytes.NewReader(sequence(128)),
	}
}

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func testDetail() verification.AuthorizationDetail {
	return verification.AuthorizationDetail{
		Method:         claims.MethodIDDocScan,
		Age:            verification.AtLeastYears(18),
		VerifiedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		VerificationID: "ver-123",
		Provenance:     verification.ProvenanceIDDocScan,
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestUseURL(t *testing.T) {
	t.Parallel()

	useClaims, err := claims.Build(claims.Options{
		AgeThresholds:  claims.AgeThresholds{13, 18, 21},
		AllowedMethods: []claims.Method{claims.MethodIDDocScan},
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		canCreate bool
		wantScope string
	}{
		{name: "base scope", canCreate: false, wantScope: "openid"},
		{name: "create on demand", canCreate: true, wantScope: "openid agekey.upgrade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := UseURL(useEndpoint, testClient(), useClaims, tt.canCreate)
			require.NoError(t, err)

			assert.Len(t, req.State, 64)
			assert.Len(t, req.Nonce, 64)
			assert.NotEqual(t, req.State, req.Nonce)

			u := mustParse(t, req.URL)
			assert.Equal(t, "api-test.agekey.org", u.Host)
			assert.Equal(t, "/v1/oidc/use", u.Path)

			q := u.Query()
			assert.Equal(t, "ak_test_client", q.Get("client_id"))
			assert.Equal(t, "https://shop.example.com/agekey/callback", q.Get("redirect_uri"))
			assert.Equal(t, "id_token", q.Get("response_type"))
			assert.Equal(t, tt.wantScope, q.Get("scope"))
			assert.Equal(t, req.State, q.Get("state"))
			assert.Equal(t, req.Nonce, q.Get("nonce"))
			assert.Empty(t, q.Get("client_secret"))

			if tt.canCreate {
				assert.Equal(t, "true", q.Get("can_create"))
			} else {
				assert.False(t, q.Has("can_create"))
			}

			var decoded map[string]any
			require.NoError(t, json.Unmarshal([]byte(q.Get("claims")), &decoded))
			assert.Equal(t, []any{float64(13), float64(18), float64(21)}, decoded["age_thresholds"])
			assert.Equal(t, []any{"id_doc_scan"}, decoded["allowed_methods"])
		})
	}
}

func TestUseURL_Errors(t *testing.T) {
	t.Parallel()

	useClaims, err := claims.Build(claims.Options{AgeThresholds: claims.AgeThresholds{18}})
	require.NoError(t, err)

	t.Run("nil claims", func(t *testing.T) {
		t.Parallel()
		_, err := UseURL(useEndpoint, testClient(), nil, false)
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
	})

	t.Run("claims rejected by schema", func(t *testing.T) {
		t.Parallel()
		_, err := UseURL(useEndpoint, testClient(), &claims.UseClaims{}, false)
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
	})

	t.Run("random source failure", func(t *testing.T) {
		t.Parallel()
		c := testClient()
		c.Random = failingReader{}
		_, err := UseURL(useEndpoint, c, useClaims, false)
		assert.Equal(t, akerror.KindConfiguration, akerror.KindOf(err))
	})
}

func TestNewPARForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		upgrade   bool
		wantScope string
	}{
		{name: "base scope", upgrade: false, wantScope: "openid"},
		{name: "upgrade scope", upgrade: true, wantScope: "openid agekey.upgrade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form, err := NewPARForm(testClient(), testDetail(), tt.upgrade)
			require.NoError(t, err)
			assert.Len(t, form.State, 64)

			v, err := url.ParseQuery(form.Encode())
			require.NoError(t, err)
			assert.Equal(t, "ak_test_client", v.Get("client_id"))
			assert.Equal(t, "sk_test_secret", v.Get("client_secret"))
			assert.Equal(t, "https://shop.example.com/agekey/callback", v.Get("redirect_uri"))
			assert.Equal(t, "none", v.Get("response_type"))
			assert.Equal(t, tt.wantScope, v.Get("scope"))
			assert.Equal(t, form.State, v.Get("state"))
			assert.False(t, v.Has("nonce"))

			var details []map[string]any
			require.NoError(t, json.Unmarshal([]byte(v.Get("authorization_details")), &details))
			require.Len(t, details, 1)
			assert.Equal(t, "age_verification", details[0]["type"])
			assert.Equal(t, "id_doc_scan", details[0]["method"])
			assert.Equal(t, map[string]any{"at_least_years": float64(18)}, details[0]["age"])
			assert.Equal(t, "2026-03-01T12:00:00Z", details[0]["verified_at"])
			assert.Equal(t, "ver-123", details[0]["verification_id"])
		})
	}
}

func TestNewPARForm_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing secret is checked before drawing randomness", func(t *testing.T) {
		t.Parallel()
		c := testClient()
		c.ClientSecret = ""
		c.Random = failingReader{}

		_, err := NewPARForm(c, testDetail(), false)
		require.Error(t, err)
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
		assert.Contains(t, err.Error(), "client secret")
	})

	t.Run("invalid detail", func(t *testing.T) {
		t.Parallel()
		d := testDetail()
		d.VerificationID = ""
		_, err := NewPARForm(testClient(), d, false)
		require.ErrorIs(t, err, verification.ErrMissingField)
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
	})

	t.Run("random source failure", func(t *testing.T) {
		t.Parallel()
		c := testClient()
		c.Random = failingReader{}
		_, err := NewPARForm(c, testDetail(), false)
		assert.Equal(t, akerror.KindConfiguration, akerror.KindOf(err))
	})
}

func TestCreateURL(t *testing.T) {
	t.Parallel()

	const createEndpoint = "https://api-test.agekey.org/v1/oidc/create"
	const requestURI = "urn:ietf:params:oauth:request_uri:abc123"

	t.Run("without upgrade", func(t *testing.T) {
		t.Parallel()

		raw, err := CreateURL(createEndpoint, testClient(), requestURI, false)
		require.NoError(t, err)

		q := mustParse(t, raw).Query()
		assert.Equal(t, "ak_test_client", q.Get("client_id"))
		assert.Equal(t, "none", q.Get("response_type"))
		assert.Equal(t, "openid", q.Get("scope"))
		assert.Equal(t, requestURI, q.Get("request_uri"))
		assert.False(t, q.Has("can_upgrade"))
		assert.False(t, q.Has("client_secret"))
		assert.True(t, strings.HasPrefix(raw, createEndpoint+"?"))
	})

	t.Run("with upgrade", func(t *testing.T) {
		t.Parallel()

		raw, err := CreateURL(createEndpoint, testClient(), requestURI, true)
		require.NoError(t, err)

		q := mustParse(t, raw).Query()
		assert.Equal(t, "openid agekey.upgrade", q.Get("scope"))
		assert.Equal(t, "true", q.Get("can_upgrade"))
	})

	t.Run("empty request uri", func(t *testing.T) {
		t.Parallel()

		_, err := CreateURL(createEndpoint, testClient(), "", false)
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
	})
}
