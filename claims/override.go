// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"fmt"
	"maps"
	"time"
)

// MethodOverride adjusts the requirements for one verification method.
// Build one with MinAgeOverride or ThresholdOverride.
type MethodOverride struct {
	minAge        *int
	ageThresholds []int
	verifiedAfter time.Time
	attributes    map[string]any
}

// MinAgeOverride requires at least minAge for the method, whatever the root threshold.
func MinAgeOverride(minAge int) MethodOverride {
	return MethodOverride{minAge: &minAge}
}

// ThresholdOverride replaces each root threshold, position by position, for the method.
func ThresholdOverride(ages ...int) MethodOverride {
	return MethodOverride{ageThresholds: append([]int(nil), ages...)}
}

// WithMinAge returns a copy of the override that also sets a minimum age.
func (o MethodOverride) WithMinAge(minAge int) MethodOverride {
	o.minAge = &minAge
	return o
}

// WithThresholds returns a copy of the override that also sets per-threshold ages.
func (o MethodOverride) WithThresholds(ages ...int) MethodOverride {
	o.ageThresholds = append([]int(nil), ages...)
	return o
}

// WithVerifiedAfter returns a copy of the override with a recency requirement.
func (o MethodOverride) WithVerifiedAfter(t time.Time) MethodOverride {
	o.verifiedAfter = t
	return o
}

// WithAttributes returns a copy of the override with free-form attributes.
func (o MethodOverride) WithAttributes(attrs map[string]any) MethodOverride {
	o.attributes = maps.Clone(attrs)
	return o
}

// MinAge returns the minimum age, if set.
func (o MethodOverride) MinAge() (int, bool) {
	if o.minAge == nil {
		return 0, false
	}
	return *o.minAge, true
}

// Thresholds returns the per-threshold ages, if set.
func (o MethodOverride) Thresholds() []int {
	return o.ageThresholds
}

func (o MethodOverride) validate(method Method, rootLen int) error {
	if method == MethodFacialAgeEstimation && o.minAge == nil && len(o.ageThresholds) == 0 {
		return invalid(fmt.Errorf("%w: %s override requires min_age or age_thresholds", ErrInvalidOverride, method))
	}
	if o.minAge != nil && (*o.minAge < 1 || *o.minAge > MaxAge) {
		return invalid(fmt.Errorf("%w: %s min_age %d out of range 1..%d", ErrInvalidOverride, method, *o.minAge, MaxAge))
	}
	if len(o.ageThresholds) > 0 {
		if len(o.ageThresholds) != rootLen {
			return invalid(fmt.Errorf("%w: %s age_thresholds has %d entries, expected %d",
				ErrInvalidOverride, method, len(o.ageThresholds), rootLen))
		}
		for _, age := range o.ageThresholds {
			if age < 1 || age > MaxAge {
				return invalid(fmt.Errorf("%w: %s age %d out of range 1..%d", ErrInvalidOverride, method, age, MaxAge))
			}
		}
	}
	return nil
}

func (o MethodOverride) toClaims() OverrideClaims {
	out := OverrideClaims{
		VerifiedAfter: FormatDate(o.verifiedAfter),
		Attributes:    maps.Clone(o.attributes),
	}
	if o.minAge != nil {
		v := *o.minAge
		out.MinAge = &v
	}
	if len(o.ageThresholds) > 0 {
		out.AgeThresholds = append([]int(nil), o.ageThresholds...)
	}
	return out
}
