// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package schema checks outbound AgeKey payloads against embedded JSON schemas.

The claims parameter of a Use request and the authorization_details parameter
of a pushed authorization request are validated before they leave the
process, so a malformed payload fails locally as invalid_request instead of
costing a round trip:

	if err := schema.ValidateUseClaims(data); err != nil {
		// akerror.KindInvalidRequest
	}
*/
package schema
