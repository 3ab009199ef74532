// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"fmt"

	"github.com/CadamTech/agekey-sdk/validation/pattern"
)

// MaxProvenancePatterns bounds each provenance list.
const MaxProvenancePatterns = 10

// ErrInvalidProvenance indicates a malformed provenance filter.
var ErrInvalidProvenance = errors.New("invalid provenance filter")

// ProvenanceFilter accepts or rejects signals by provenance. Each entry is an
// exact provenance or a prefix pattern ending in "*". A zero filter accepts
// everything; denial wins when a provenance matches both lists.
type ProvenanceFilter struct {
	Allowed []string
	Denied  []string
}

// IsZero reports whether neither list is populated.
func (f *ProvenanceFilter) IsZero() bool {
	return f == nil || (len(f.Allowed) == 0 && len(f.Denied) == 0)
}

// Validate checks list sizes and pattern syntax.
func (f *ProvenanceFilter) Validate() error {
	if f == nil {
		return nil
	}
	for _, list := range []struct {
		name     string
		patterns []string
	}{{"allowed", f.Allowed}, {"denied", f.Denied}} {
		if len(list.patterns) > MaxProvenancePatterns {
			return invalid(fmt.Errorf("%w: %s has %d entries, maximum is %d",
				ErrInvalidProvenance, list.name, len(list.patterns), MaxProvenancePatterns))
		}
		for _, p := range list.patterns {
			if err := pattern.Validate(p); err != nil {
				return invalid(fmt.Errorf("%w: %s: %w", ErrInvalidProvenance, list.name, err))
			}
		}
	}
	return nil
}

// Accepts reports whether a signal with the given provenance passes the filter.
func (f *ProvenanceFilter) Accepts(provenance string) bool {
	if f.IsZero() {
		return true
	}
	if pattern.MatchAny(f.Denied, provenance) {
		return false
	}
	if len(f.Allowed) == 0 {
		return true
	}
	return pattern.MatchAny(f.Allowed, provenance)
}

func (f *ProvenanceFilter) toClaims() *ProvenanceClaims {
	return &ProvenanceClaims{
		Allowed: append([]string(nil), f.Allowed...),
		Denied:  append([]string(nil), f.Denied...),
	}
}
