// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package verification models the age verification claim a relying party pushes
to AgeKey in the Create flow.

An [AuthorizationDetail] records how, when and with what result the relying
party verified a user's age. The age itself is an [AgeSpec], exactly one of:

	verification.DateOfBirth(time.Date(2001, 4, 2, 0, 0, 0, 0, time.UTC))
	verification.ExactYears(23)
	verification.AtLeastYears(18)

The sum type is sealed, so a detail can never carry two age forms or none.

	detail := verification.AuthorizationDetail{
		Method:         claims.MethodIDDocScan,
		Age:            verification.AtLeastYears(18),
		VerifiedAt:     time.Now(),
		VerificationID: "txn-1234",
		Provenance:     verification.ProvenanceIDDocScan,
	}
	if err := detail.Validate(); err != nil {
		// invalid_request
	}
*/
package verification
