// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package pattern validates and matches provenance patterns.
package pattern

import (
	"fmt"
	"strings"
	"unicode"
)

// Wildcard marks a prefix pattern when it is the last character.
const Wildcard = "*"

// MaxLength bounds a single pattern.
const MaxLength = 256

// Validate checks that p is an exact value or a prefix pattern with a single
// trailing wildcard.
func Validate(p string) error {
	if p == "" {
		return fmt.Errorf("provenance pattern cannot be empty")
	}

	if len(p) > MaxLength {
		return fmt.Errorf("provenance pattern exceeds maximum length of %d bytes", MaxLength)
	}

	if strings.IndexFunc(p, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("provenance pattern cannot contain whitespace or control characters: %q", p)
	}

	if i := strings.Index(p, Wildcard); i >= 0 && i != len(p)-1 {
		return fmt.Errorf("provenance pattern may only use %q as its final character: %q", Wildcard, p)
	}

	return nil
}

// IsPrefix reports whether p is a prefix pattern.
func IsPrefix(p string) bool {
	return strings.HasSuffix(p, Wildcard)
}

// Match reports whether value matches the pattern p.
func Match(p, value string) bool {
	if IsPrefix(p) {
		return strings.HasPrefix(value, strings.TrimSuffix(p, Wildcard))
	}
	return p == value
}

// MatchAny reports whether value matches any of the patterns.
func MatchAny(patterns []string, value string) bool {
	for _, p := range patterns {
		if Match(p, value) {
			return true
		}
	}
	return false
}
