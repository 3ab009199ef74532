// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package verification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/claims"
)

func validDetail() AuthorizationDetail {
	return AuthorizationDetail{
		Method:         claims.MethodIDDocScan,
		Age:            AtLeastYears(18),
		VerifiedAt:     time.Date(2025, 5, 1, 12, 30, 45, 999, time.UTC),
		VerificationID: "txn-1",
		Provenance:     ProvenanceIDDocScan,
	}
}

func TestAgeSpec_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		age  AgeSpec
		want string
	}{
		{"date of birth", DateOfBirth(time.Date(2001, 4, 2, 15, 0, 0, 0, time.UTC)), `{"date_of_birth":"2001-04-02"}`},
		{"exact years", ExactYears(23), `{"years":23}`},
		{"at least years", AtLeastYears(18), `{"at_least_years":18}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(tt.age)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestAuthorizationDetail_MarshalJSON(t *testing.T) {
	t.Parallel()

	d := validDetail()
	d.Attributes = map[string]any{"document_country": "GB"}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "age_verification",
		"method": "id_doc_scan",
		"age": {"at_least_years": 18},
		"verified_at": "2025-05-01T12:30:45Z",
		"verification_id": "txn-1",
		"provenance": "/agekey/id_doc_scan",
		"attributes": {"document_country": "GB"}
	}`, string(data))
}

func TestAuthorizationDetail_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*AuthorizationDetail)
		wantErr error
	}{
		{"valid", nil, nil},
		{"missing method", func(d *AuthorizationDetail) { d.Method = "" }, ErrMissingField},
		{"missing age", func(d *AuthorizationDetail) { d.Age = nil }, ErrMissingField},
		{"missing verified_at", func(d *AuthorizationDetail) { d.VerifiedAt = time.Time{} }, ErrMissingField},
		{"missing verification_id", func(d *AuthorizationDetail) { d.VerificationID = "" }, ErrMissingField},
		{"missing provenance", func(d *AuthorizationDetail) { d.Provenance = "" }, ErrMissingField},
		{"negative years", func(d *AuthorizationDetail) { d.Age = ExactYears(-1) }, ErrInvalidAge},
		{"too many years", func(d *AuthorizationDetail) { d.Age = AtLeastYears(200) }, ErrInvalidAge},
		{"zero date of birth", func(d *AuthorizationDetail) { d.Age = DateOfBirth(time.Time{}) }, ErrInvalidAge},
		{"custom provenance accepted", func(d *AuthorizationDetail) { d.Provenance = "partner-kyc" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := validDetail()
			if tt.modify != nil {
				tt.modify(&d)
			}
			err := d.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidDetail)
			assert.Equal(t, akerror.KindInvalidRequest, akerror.KindOf(err))
		})
	}
}

func TestEncodeDetails(t *testing.T) {
	t.Parallel()

	t.Run("single element array", func(t *testing.T) {
		t.Parallel()

		encoded, err := EncodeDetails(validDetail())
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, DetailType, decoded[0]["type"])
	})

	t.Run("invalid detail is rejected", func(t *testing.T) {
		t.Parallel()

		d := validDetail()
		d.Provenance = ""
		_, err := EncodeDetails(d)
		assert.True(t, akerror.Is(err, akerror.KindInvalidRequest))
	})
}

func TestKnownProvenances(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, p := range KnownProvenances {
		assert.False(t, seen[p], "duplicate provenance %s", p)
		seen[p] = true
	}
	assert.Len(t, KnownProvenances, 8)
}
