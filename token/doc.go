// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package token decodes the payload of an AgeKey ID token without verifying its
signature.

Signature verification is the responsibility of a trusted verifier holding the
published signing keys, typically on the server. This package only inspects
the middle segment of the compact three-part form and exposes tolerant,
independently typed accessors over the decoded claims.

# Decoding

	claims, ok := token.Decode(raw)
	if !ok {
		// not a three-part token, or the payload is not base64url JSON
	}

Decode never returns an error: malformed input simply yields no payload.

# Accessors

Each accessor reports absence with a false second value instead of failing, so
one malformed claim never prevents reading the others:

	nonce, ok := claims.Nonce()
	results, ok := claims.AgeThresholds()
	expired := claims.IsExpired(time.Now())

A missing or non-numeric exp claim counts as expired.
*/
package token
