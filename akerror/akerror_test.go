// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package akerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(KindInvalidRequest, "client secret is required")
	require.Equal(t, "client secret is required", err.Error())
	require.Equal(t, KindInvalidRequest, err.Kind())
	require.Empty(t, err.DocURL())
	require.Empty(t, err.OAuthCode())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("wraps cause with kind and message", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := Wrap(KindNetworkError, cause, "PAR request failed")

		require.Error(t, err)
		require.Equal(t, "PAR request failed: connection refused", err.Error())
		require.ErrorIs(t, err, cause)
		require.Equal(t, KindNetworkError, KindOf(err))
	})

	t.Run("keeps cause message without prefix", func(t *testing.T) {
		t.Parallel()

		err := Wrap(KindInvalidToken, errors.New("token expired"), "")
		require.Equal(t, "token expired", err.Error())
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, Wrap(KindServerError, nil, "ignored"))
	})
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	t.Run("nil error has no kind", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Kind(""), KindOf(nil))
	})

	t.Run("plain error has no kind", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	})

	t.Run("extracts kind from deeply wrapped error", func(t *testing.T) {
		t.Parallel()

		base := New(KindStateMismatch, "state mismatch")
		wrapped := fmt.Errorf("layer 2: %w", fmt.Errorf("layer 1: %w", base))
		assert.Equal(t, KindStateMismatch, KindOf(wrapped))
		assert.True(t, Is(wrapped, KindStateMismatch))
		assert.False(t, Is(wrapped, KindNonceMismatch))
	})

	t.Run("errors.As extracts the Error", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("outer: %w", New(KindAccessDenied, "denied"))
		var akErr *Error
		require.ErrorAs(t, wrapped, &akErr)
		assert.Equal(t, KindAccessDenied, akErr.Kind())
	})
}

func TestError_WithDocs(t *testing.T) {
	t.Parallel()

	orig := New(KindConfiguration, "bad config")
	withDocs := orig.WithDocs("https://example.com/docs/config")

	assert.Equal(t, "https://example.com/docs/config", withDocs.DocURL())
	assert.Empty(t, orig.DocURL(), "WithDocs must not mutate the receiver")
	assert.Equal(t, orig.Kind(), withDocs.Kind())
}

func TestError_HTTPCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindConfiguration, http.StatusInternalServerError},
		{KindInvalidRequest, http.StatusBadRequest},
		{KindUnauthorizedClient, http.StatusUnauthorized},
		{KindAccessDenied, http.StatusForbidden},
		{KindStateMismatch, http.StatusBadRequest},
		{KindNonceMismatch, http.StatusBadRequest},
		{KindInvalidToken, http.StatusBadRequest},
		{KindServerError, http.StatusBadGateway},
		{KindNetworkError, http.StatusServiceUnavailable},
		{Kind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, New(tt.kind, "x").HTTPCode())
		})
	}
}

func TestFromOAuthCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        string
		description string
		wantKind    Kind
		wantMsg     string
	}{
		{"access denied", "access_denied", "User cancelled", KindAccessDenied, "User cancelled"},
		{"invalid request", "invalid_request", "bad claims", KindInvalidRequest, "bad claims"},
		{"unauthorized client", "unauthorized_client", "", KindUnauthorizedClient, "unauthorized_client"},
		{"server error", "server_error", "boom", KindServerError, "boom"},
		{"temporarily unavailable", "temporarily_unavailable", "", KindServerError, "temporarily_unavailable"},
		{"unknown code", "login_required", "log in first", KindInvalidRequest, "log in first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := FromOAuthCode(tt.code, tt.description)
			assert.Equal(t, tt.wantKind, err.Kind())
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.code, err.OAuthCode())
		})
	}
}

func TestFromHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		code     string
		wantKind Kind
	}{
		{"401 without body", http.StatusUnauthorized, "", KindUnauthorizedClient},
		{"500 without body", http.StatusInternalServerError, "", KindServerError},
		{"503 without body", http.StatusServiceUnavailable, "", KindServerError},
		{"400 without body", http.StatusBadRequest, "", KindInvalidRequest},
		{"body code wins over status", http.StatusBadRequest, "unauthorized_client", KindUnauthorizedClient},
		{"access denied on 403", http.StatusForbidden, "access_denied", KindAccessDenied},
		{"unknown code falls back to status", http.StatusBadGateway, "weird", KindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := FromHTTPStatus(tt.status, tt.code, "")
			assert.Equal(t, tt.wantKind, err.Kind())
			assert.NotEmpty(t, err.Error())
		})
	}
}
