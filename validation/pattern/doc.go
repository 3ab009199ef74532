// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package pattern validates and matches provenance patterns.

A provenance identifies how an age signal was established, for example
"/agekey/facial_age_estimation/yoti". A pattern is either an exact provenance
or a prefix pattern marked by a single trailing wildcard.

# Validation

	if err := pattern.Validate("/agekey/facial_age_estimation/*"); err != nil {
		// Handle invalid pattern
	}

Valid patterns must:
  - Be non-empty
  - Not contain whitespace or control characters
  - Use the wildcard only as the final character

# Matching

	pattern.Match("/agekey/*", "/agekey/id_doc_scan") // true
	pattern.Match("/agekey", "/agekey/id_doc_scan")   // false
*/
package pattern
