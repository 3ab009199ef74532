// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"fmt"
	"time"

	"github.com/CadamTech/agekey-sdk/akerror"
)

// DateFormat is the wire format of calendar dates.
const DateFormat = "2006-01-02"

// Limits on the threshold set.
const (
	MinThresholds = 1
	MaxThresholds = 5
	MaxAge        = 150
)

// Validation errors. They are returned wrapped in an *akerror.Error of kind
// akerror.KindInvalidRequest.
var (
	// ErrInvalidThresholds indicates an empty, oversized, non-positive or duplicated threshold set.
	ErrInvalidThresholds = errors.New("invalid age thresholds")

	// ErrInvalidOverride indicates a malformed per-method override.
	ErrInvalidOverride = errors.New("invalid method override")

	// ErrInvalidMethod indicates an empty verification method name.
	ErrInvalidMethod = errors.New("invalid verification method")
)

// Method names a verification method.
type Method string

// Verification methods known to AgeKey. Other values are passed through unchanged.
const (
	MethodIDDocScan             Method = "id_doc_scan"
	MethodPaymentCardNetwork    Method = "payment_card_network"
	MethodFacialAgeEstimation   Method = "facial_age_estimation"
	MethodEmailAgeEstimation    Method = "email_age_estimation"
	MethodDigitalID             Method = "digital_id"
	MethodNationalID            Method = "national_id"
	MethodMobileNetworkOperator Method = "mobile_network_operator"
	MethodBankAccount           Method = "bank_account"
)

// AgeThresholds is the ordered set of ages being verified.
type AgeThresholds []int

// Validate checks the threshold set holds 1 to 5 distinct ages in 1..150.
func (a AgeThresholds) Validate() error {
	if len(a) < MinThresholds || len(a) > MaxThresholds {
		return invalid(fmt.Errorf("%w: expected %d to %d thresholds, got %d",
			ErrInvalidThresholds, MinThresholds, MaxThresholds, len(a)))
	}
	seen := make(map[int]struct{}, len(a))
	for _, age := range a {
		if age < 1 || age > MaxAge {
			return invalid(fmt.Errorf("%w: age %d out of range 1..%d", ErrInvalidThresholds, age, MaxAge))
		}
		if _, dup := seen[age]; dup {
			return invalid(fmt.Errorf("%w: duplicate age %d", ErrInvalidThresholds, age))
		}
		seen[age] = struct{}{}
	}
	return nil
}

// Options are the inputs to Build.
type Options struct {
	// AgeThresholds is required.
	AgeThresholds AgeThresholds

	// AllowedMethods restricts the verification methods the server may use.
	AllowedMethods []Method

	// VerifiedAfter rejects signals established before this day.
	VerifiedAfter time.Time

	// Overrides adjusts the requirements per verification method.
	Overrides map[Method]MethodOverride

	// Provenance filters signals by their origin.
	Provenance *ProvenanceFilter
}

// UseClaims is the serialized claims object of a Use-flow request.
type UseClaims struct {
	AgeThresholds  []int                     `json:"age_thresholds"`
	AllowedMethods []Method                  `json:"allowed_methods,omitempty"`
	VerifiedAfter  string                    `json:"verified_after,omitempty"`
	Overrides      map[Method]OverrideClaims `json:"overrides,omitempty"`
	Provenance     *ProvenanceClaims         `json:"provenance,omitempty"`
}

// OverrideClaims is the serialized form of a MethodOverride.
type OverrideClaims struct {
	MinAge        *int           `json:"min_age,omitempty"`
	AgeThresholds []int          `json:"age_thresholds,omitempty"`
	VerifiedAfter string         `json:"verified_after,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty"`
}

// ProvenanceClaims is the serialized form of a ProvenanceFilter.
type ProvenanceClaims struct {
	Allowed []string `json:"allowed,omitempty"`
	Denied  []string `json:"denied,omitempty"`
}

// Build validates opts and returns the claims object to serialize.
func Build(opts Options) (*UseClaims, error) {
	if err := opts.AgeThresholds.Validate(); err != nil {
		return nil, err
	}

	out := &UseClaims{
		AgeThresholds: append([]int(nil), opts.AgeThresholds...),
	}

	if len(opts.AllowedMethods) > 0 {
		for _, m := range opts.AllowedMethods {
			if m == "" {
				return nil, invalid(fmt.Errorf("%w: allowed_methods contains an empty method", ErrInvalidMethod))
			}
		}
		out.AllowedMethods = append([]Method(nil), opts.AllowedMethods...)
	}

	out.VerifiedAfter = FormatDate(opts.VerifiedAfter)

	if len(opts.Overrides) > 0 {
		out.Overrides = make(map[Method]OverrideClaims, len(opts.Overrides))
		for method, o := range opts.Overrides {
			if method == "" {
				return nil, invalid(fmt.Errorf("%w: override for an empty method", ErrInvalidMethod))
			}
			if err := o.validate(method, len(opts.AgeThresholds)); err != nil {
				return nil, err
			}
			out.Overrides[method] = o.toClaims()
		}
	}

	if opts.Provenance != nil && !opts.Provenance.IsZero() {
		if err := opts.Provenance.Validate(); err != nil {
			return nil, err
		}
		out.Provenance = opts.Provenance.toClaims()
	}

	return out, nil
}

// FormatDate renders t as a UTC calendar date, or the empty string for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateFormat)
}

func invalid(err error) error {
	return akerror.Wrap(akerror.KindInvalidRequest, err, "")
}
