// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names read from the ID token payload.
const (
	ClaimSubject       = "sub"
	ClaimNonce         = "nonce"
	ClaimExpiration    = "exp"
	ClaimIssuedAt      = "iat"
	ClaimAgeThresholds = "age_thresholds"
)

// segmentParser decodes base64url segments with or without padding.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is a decoded ID token payload. Values keep the types produced by
// encoding/json with UseNumber, so numbers are json.Number.
type Claims map[string]any

// Decode extracts the payload of a compact three-part token. It reports false
// when the token does not have exactly three segments, the payload segment is
// empty, or the payload is not a base64url encoded JSON object.
func Decode(raw string) (Claims, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[1] == "" {
		return nil, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var claims Claims
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return nil, false
	}
	// trailing data after the object
	if dec.More() {
		return nil, false
	}
	return claims, true
}

// String returns the named claim if it is a string.
func (c Claims) String(name string) (string, bool) {
	v, ok := c[name].(string)
	return v, ok
}

// Number returns the named claim if it is numeric.
func (c Claims) Number(name string) (float64, bool) {
	switch v := c[name].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Bool returns the named claim if it is a boolean.
func (c Claims) Bool(name string) (bool, bool) {
	v, ok := c[name].(bool)
	return v, ok
}

// Object returns the named claim if it is a JSON object.
func (c Claims) Object(name string) (map[string]any, bool) {
	v, ok := c[name].(map[string]any)
	return v, ok
}

// Subject returns the sub claim.
func (c Claims) Subject() (string, bool) {
	sub, err := jwt.MapClaims(c).GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// Nonce returns the nonce claim.
func (c Claims) Nonce() (string, bool) {
	return c.String(ClaimNonce)
}

// Expiration returns the exp claim in seconds since the epoch.
func (c Claims) Expiration() (float64, bool) {
	return c.Number(ClaimExpiration)
}

// IsExpired reports whether the token is expired at now. A token without a
// numeric exp claim is always expired.
func (c Claims) IsExpired(now time.Time) bool {
	exp, ok := c.Expiration()
	if !ok {
		return true
	}
	return float64(now.Unix()) >= exp
}

// AgeThresholds returns the age_thresholds result mapping. Entries whose value
// is not a boolean are skipped. It reports false when the claim is absent or
// not an object.
func (c Claims) AgeThresholds() (map[string]bool, bool) {
	obj, ok := c.Object(ClaimAgeThresholds)
	if !ok {
		return nil, false
	}
	out := make(map[string]bool, len(obj))
	for age, v := range obj {
		if b, ok := v.(bool); ok {
			out[age] = b
		}
	}
	return out, true
}
