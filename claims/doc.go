// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package claims builds the claims object sent with a Use-flow authorization
request.

The only required input is the ordered set of age thresholds being verified.
Optional filters narrow which verification signals the authorization server
may accept:

	c, err := claims.Build(claims.Options{
		AgeThresholds:  claims.AgeThresholds{13, 18, 21},
		AllowedMethods: []claims.Method{claims.MethodIDDocScan, claims.MethodFacialAgeEstimation},
		VerifiedAfter:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Overrides: map[claims.Method]claims.MethodOverride{
			claims.MethodFacialAgeEstimation: claims.ThresholdOverride(16, 21, 25),
		},
		Provenance: &claims.ProvenanceFilter{
			Denied: []string{"/agekey/email_age_estimation/*"},
		},
	})

Only populated optional fields appear in the serialized object; absent fields
are omitted rather than sent as null. Dates are truncated to the UTC calendar
day.

# Overrides

A per-threshold override lists one age per root threshold, in the same order:
position i replaces threshold i for that method. Facial age estimation
overrides must set a minimum age, per-threshold ages, or both.

All validation failures are [akerror.KindInvalidRequest] errors raised before
any network activity.
*/
package claims
