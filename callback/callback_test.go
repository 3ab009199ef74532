// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"encoding/base64"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadamTech/agekey-sdk/akerror"
)

const (
	redirectURI = "https://shop.example.com/agekey/callback"
	testState   = "5f3c9a0e1d2b4c6a8e7f9d1b3a5c7e9f0a2b4c6d8e0f1a3b5c7d9e1f3a5b7c9d"
	testNonce   = "a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"
)

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unused-signing-key"))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":            "user-7d1e",
		"nonce":          testNonce,
		"exp":            now.Add(5 * time.Minute).Unix(),
		"age_thresholds": map[string]any{"18": true, "21": false},
		"iss":            "https://api.agekey.org",
	}
}

func callbackURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return redirectURI + "?" + q.Encode()
}

func TestValidateUse(t *testing.T) {
	t.Parallel()

	raw := callbackURL(map[string]string{
		"id_token": mintToken(t, validClaims()),
		"state":    testState,
	})

	result, err := ValidateUse(raw, Expected{State: testState, Nonce: testNonce}, now)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"18": true, "21": false}, result.AgeThresholds)
	assert.Equal(t, "user-7d1e", result.Subject)
	assert.True(t, result.Meets(18))
	assert.False(t, result.Meets(21))
	assert.False(t, result.Meets(25))

	iss, ok := result.Raw.String("iss")
	assert.True(t, ok)
	assert.Equal(t, "https://api.agekey.org", iss)
}

func TestValidateUse_IsDeterministic(t *testing.T) {
	t.Parallel()

	raw := callbackURL(map[string]string{
		"id_token": mintToken(t, validClaims()),
		"state":    testState,
	})
	want := Expected{State: testState, Nonce: testNonce}

	first, err := ValidateUse(raw, want, now)
	require.NoError(t, err)
	second, err := ValidateUse(raw, want, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err1 := ValidateUse(raw, Expected{State: "other", Nonce: testNonce}, now)
	_, err2 := ValidateUse(raw, Expected{State: "other", Nonce: testNonce}, now)
	assert.Equal(t, akerror.KindOf(err1), akerror.KindOf(err2))
}

func TestValidateUse_Failures(t *testing.T) {
	t.Parallel()

	withClaims := func(mutate func(jwt.MapClaims)) string {
		c := validClaims()
		mutate(c)
		return mintToken(t, c)
	}

	tests := []struct {
		name     string
		url      string
		want     Expected
		wantKind akerror.Kind
		wantErr  error
		wantMsg  string
	}{
		{
			name: "access denied takes precedence over state",
			url: callbackURL(map[string]string{
				"error":             "access_denied",
				"error_description": "User cancelled",
				"state":             "wrong",
			}),
			wantKind: akerror.KindAccessDenied,
			wantMsg:  "User cancelled",
		},
		{
			name:     "server error code",
			url:      callbackURL(map[string]string{"error": "temporarily_unavailable"}),
			wantKind: akerror.KindServerError,
		},
		{
			name:     "unknown error code",
			url:      callbackURL(map[string]string{"error": "login_required"}),
			wantKind: akerror.KindInvalidRequest,
		},
		{
			name: "state mismatch",
			url: callbackURL(map[string]string{
				"id_token": mintToken(t, validClaims()),
				"state":    testState[:63] + "0",
			}),
			wantKind: akerror.KindStateMismatch,
			wantErr:  ErrStateMismatch,
		},
		{
			name:     "missing state",
			url:      callbackURL(map[string]string{"id_token": mintToken(t, validClaims())}),
			wantKind: akerror.KindStateMismatch,
		},
		{
			name: "empty expected state never matches",
			url: callbackURL(map[string]string{
				"id_token": mintToken(t, validClaims()),
				"state":    "",
			}),
			want:     Expected{State: "", Nonce: testNonce},
			wantKind: akerror.KindStateMismatch,
		},
		{
			name:     "missing token",
			url:      callbackURL(map[string]string{"state": testState}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrMissingToken,
		},
		{
			name:     "undecodable token",
			url:      callbackURL(map[string]string{"state": testState, "id_token": "not-a-token"}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrMalformedToken,
		},
		{
			name: "payload is not json",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": "e30." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig",
			}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrMalformedToken,
		},
		{
			name: "nonce mismatch",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { c["nonce"] = "replayed" }),
			}),
			wantKind: akerror.KindNonceMismatch,
			wantErr:  ErrNonceMismatch,
		},
		{
			name: "missing nonce claim",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { delete(c, "nonce") }),
			}),
			wantKind: akerror.KindNonceMismatch,
		},
		{
			name: "expired one hour ago",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { c["exp"] = now.Add(-time.Hour).Unix() }),
			}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrTokenExpired,
		},
		{
			name: "expires exactly now",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { c["exp"] = now.Unix() }),
			}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrTokenExpired,
		},
		{
			name: "non numeric exp",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { c["exp"] = "tomorrow" }),
			}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrTokenExpired,
		},
		{
			name: "missing age thresholds",
			url: callbackURL(map[string]string{
				"state":    testState,
				"id_token": withClaims(func(c jwt.MapClaims) { delete(c, "age_thresholds") }),
			}),
			wantKind: akerror.KindInvalidToken,
			wantErr:  ErrMissingAgeThresholds,
		},
		{
			name:     "malformed url",
			url:      "https://shop.example.com/cb?%zz",
			wantKind: akerror.KindInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := tt.want
			if want == (Expected{}) {
				want = Expected{State: testState, Nonce: testNonce}
			}

			result, err := ValidateUse(tt.url, want, now)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, akerror.KindOf(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("reads query parameters without validation", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(callbackURL(map[string]string{
			"id_token":          "a.b.c",
			"state":             "s",
			"error":             "access_denied",
			"error_description": "User cancelled",
		}))
		require.NoError(t, err)
		assert.Equal(t, Params{IDToken: "a.b.c", State: "s", Error: "access_denied", ErrorDescription: "User cancelled"}, p)
	})

	t.Run("falls back to the fragment", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(redirectURI + "#id_token=a.b.c&state=s")
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", p.IDToken)
		assert.Equal(t, "s", p.State)
	})

	t.Run("query wins over fragment", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(redirectURI + "?state=q#state=f")
		require.NoError(t, err)
		assert.Equal(t, "q", p.State)
	})

	t.Run("no parameters", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(redirectURI)
		require.NoError(t, err)
		assert.Equal(t, Params{}, p)
	})
}

func TestParseCreate(t *testing.T) {
	t.Parallel()

	t.Run("error is reported without failing", func(t *testing.T) {
		t.Parallel()

		res, err := ParseCreate(callbackURL(map[string]string{
			"error":             "access_denied",
			"error_description": "User cancelled",
			"state":             testState,
		}))
		require.NoError(t, err)
		assert.Equal(t, &CreateResult{
			Success:          false,
			Error:            "access_denied",
			ErrorDescription: "User cancelled",
			State:            testState,
		}, res)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		res, err := ParseCreate(callbackURL(map[string]string{"state": testState}))
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, testState, res.State)
		assert.Empty(t, res.Error)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()

		_, err := ParseCreate("://bad")
		assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	t.Parallel()

	base := "0123456789abcdef"

	assert.True(t, ConstantTimeEqual(base, base))
	assert.True(t, ConstantTimeEqual("", ""))
	assert.False(t, ConstantTimeEqual(base, base[:15]))
	assert.False(t, ConstantTimeEqual(base, base+"0"))

	for i := range len(base) {
		b := []byte(base)
		b[i] ^= 0x01
		assert.False(t, ConstantTimeEqual(base, string(b)), "differing byte at position %d", i)
	}
}
