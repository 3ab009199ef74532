// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package verification

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/CadamTech/agekey-sdk/claims"
)

// AgeSpec is the verified age in one of three forms.
type AgeSpec interface {
	json.Marshaler
	validate() error
	sealed()
}

// DateOfBirth is an age given as a calendar date of birth.
type DateOfBirth time.Time

// ExactYears is an age given in exact whole years.
type ExactYears int

// AtLeastYears is a lower bound on the age in whole years.
type AtLeastYears int

func (DateOfBirth) sealed()  {}
func (ExactYears) sealed()   {}
func (AtLeastYears) sealed() {}

// MarshalJSON implements json.Marshaler.
func (d DateOfBirth) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DateOfBirth string `json:"date_of_birth"`
	}{claims.FormatDate(time.Time(d))})
}

// MarshalJSON implements json.Marshaler.
func (y ExactYears) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Years int `json:"years"`
	}{int(y)})
}

// MarshalJSON implements json.Marshaler.
func (y AtLeastYears) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AtLeastYears int `json:"at_least_years"`
	}{int(y)})
}

func (d DateOfBirth) validate() error {
	t := time.Time(d)
	if t.IsZero() {
		return fmt.Errorf("%w: date_of_birth is zero", ErrInvalidAge)
	}
	return nil
}

func (y ExactYears) validate() error {
	return validateYears("years", int(y))
}

func (y AtLeastYears) validate() error {
	return validateYears("at_least_years", int(y))
}

func validateYears(field string, n int) error {
	if n < 0 || n > claims.MaxAge {
		return fmt.Errorf("%w: %s %d out of range 0..%d", ErrInvalidAge, field, n, claims.MaxAge)
	}
	return nil
}
