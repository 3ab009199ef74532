// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		// Valid cases
		{"exact value", "/agekey/id_doc_scan", false},
		{"prefix pattern", "/agekey/*", false},
		{"wildcard only", "*", false},
		{"plain word", "yoti", false},

		// Invalid cases
		{"empty", "", true},
		{"leading wildcard", "*/agekey", true},
		{"inner wildcard", "/agekey/*/yoti", true},
		{"double trailing wildcard", "/agekey/**", true},
		{"space", "/agekey/id doc", true},
		{"newline", "/agekey\n", true},
		{"null byte", "/agekey\x00", true},
		{"too long", strings.Repeat("a", MaxLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{"exact match", "/agekey/id_doc_scan", "/agekey/id_doc_scan", true},
		{"exact mismatch", "/agekey/id_doc_scan", "/agekey/id_doc_scan/v2", false},
		{"prefix match", "/agekey/*", "/agekey/id_doc_scan", true},
		{"prefix matches bare prefix", "/agekey/*", "/agekey/", true},
		{"prefix mismatch", "/agekey/*", "/other/id_doc_scan", false},
		{"wildcard matches everything", "*", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(tt.pattern, tt.value))
		})
	}
}

func TestMatchAny(t *testing.T) {
	t.Parallel()

	patterns := []string{"/agekey/facial_age_estimation/*", "/partner/bank"}
	assert.True(t, MatchAny(patterns, "/agekey/facial_age_estimation/yoti"))
	assert.True(t, MatchAny(patterns, "/partner/bank"))
	assert.False(t, MatchAny(patterns, "/partner/bank/extra"))
	assert.False(t, MatchAny(nil, "/partner/bank"))
}
