// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package verification

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CadamTech/agekey-sdk/akerror"
	"github.com/CadamTech/agekey-sdk/claims"
)

// DetailType is the fixed authorization_details type of an age verification.
const DetailType = "age_verification"

// Provenance values understood by AgeKey. Any non-empty string is accepted.
const (
	ProvenanceIDDocScan             = "/agekey/id_doc_scan"
	ProvenancePaymentCardNetwork    = "/agekey/payment_card_network"
	ProvenanceFacialAgeEstimation   = "/agekey/facial_age_estimation"
	ProvenanceEmailAgeEstimation    = "/agekey/email_age_estimation"
	ProvenanceDigitalID             = "/agekey/digital_id"
	ProvenanceNationalID            = "/agekey/national_id"
	ProvenanceMobileNetworkOperator = "/agekey/mobile_network_operator"
	ProvenanceBankAccount           = "/agekey/bank_account"
)

// KnownProvenances lists the provenance values above.
var KnownProvenances = []string{
	ProvenanceIDDocScan,
	ProvenancePaymentCardNetwork,
	ProvenanceFacialAgeEstimation,
	ProvenanceEmailAgeEstimation,
	ProvenanceDigitalID,
	ProvenanceNationalID,
	ProvenanceMobileNetworkOperator,
	ProvenanceBankAccount,
}

// Validation errors. Validate returns them wrapped in an *akerror.Error of
// kind akerror.KindInvalidRequest.
var (
	ErrInvalidAge    = errors.New("invalid age")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidDetail = errors.New("invalid authorization detail")
)

// AuthorizationDetail is one age verification pushed in the Create flow.
type AuthorizationDetail struct {
	Method         claims.Method
	Age            AgeSpec
	VerifiedAt     time.Time
	VerificationID string
	Provenance     string
	Attributes     map[string]any
}

type detailJSON struct {
	Type           string         `json:"type"`
	Method         claims.Method  `json:"method"`
	Age            AgeSpec        `json:"age"`
	VerifiedAt     string         `json:"verified_at"`
	VerificationID string         `json:"verification_id"`
	Provenance     string         `json:"provenance"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

// Validate checks that every required field is populated.
func (d AuthorizationDetail) Validate() error {
	var err error
	switch {
	case d.Method == "":
		err = fmt.Errorf("%w: method", ErrMissingField)
	case d.Age == nil:
		err = fmt.Errorf("%w: age", ErrMissingField)
	case d.VerifiedAt.IsZero():
		err = fmt.Errorf("%w: verified_at", ErrMissingField)
	case d.VerificationID == "":
		err = fmt.Errorf("%w: verification_id", ErrMissingField)
	case d.Provenance == "":
		err = fmt.Errorf("%w: provenance", ErrMissingField)
	default:
		err = d.Age.validate()
	}
	if err != nil {
		return akerror.Wrap(akerror.KindInvalidRequest, fmt.Errorf("%w: %w", ErrInvalidDetail, err), "")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d AuthorizationDetail) MarshalJSON() ([]byte, error) {
	if d.Age == nil {
		return nil, fmt.Errorf("%w: age", ErrMissingField)
	}
	return json.Marshal(detailJSON{
		Type:           DetailType,
		Method:         d.Method,
		Age:            d.Age,
		VerifiedAt:     d.VerifiedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
		VerificationID: d.VerificationID,
		Provenance:     d.Provenance,
		Attributes:     d.Attributes,
	})
}

// EncodeDetails serializes the authorization_details parameter: a JSON array
// holding exactly the given detail.
func EncodeDetails(d AuthorizationDetail) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal([]AuthorizationDetail{d})
	if err != nil {
		return "", akerror.Wrap(akerror.KindInvalidRequest, err, "failed to encode authorization_details")
	}
	return string(data), nil
}
