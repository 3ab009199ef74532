// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package environment resolves the AgeKey endpoints a client talks to.

Client identifiers and secrets carry an environment tag in a fixed prefix:

	ak_test_...  / sk_test_...   test environment
	ak_live_...  / sk_live_...   live environment

Identifiers without a recognised prefix are legacy credentials and default to
live. When both the identifier and the secret carry a tag they must agree;
a mismatch is a configuration error raised before any endpoint is derived.

	env, err := environment.Resolve("ak_test_123", "sk_test_456", "")
	// env.IsTest == true
	// env.UseEndpoint == "https://api-test.agekey.org/v1/oidc/use"

An explicit base URL replaces the derived base and every endpoint built from it.
*/
package environment
