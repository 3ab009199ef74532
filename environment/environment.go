// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"errors"
	"fmt"
	"strings"
)

// Base URLs of the hosted AgeKey environments.
const (
	LiveBaseURL = "https://api.agekey.org"
	TestBaseURL = "https://api-test.agekey.org"
)

// Endpoint paths appended to the base URL.
const (
	UsePath    = "/v1/oidc/use"
	CreatePath = "/v1/oidc/create"
	PARPath    = "/v1/oidc/create/par"
)

// Credential prefixes carrying the environment tag.
const (
	ClientIDTestPrefix = "ak_test_"
	ClientIDLivePrefix = "ak_live_"
	SecretTestPrefix   = "sk_test_"
	SecretLivePrefix   = "sk_live_"
)

// Tag is the environment encoded in a credential prefix.
type Tag int

const (
	// TagNone marks a legacy credential without a recognised prefix.
	TagNone Tag = iota
	// TagTest marks a test environment credential.
	TagTest
	// TagLive marks a live environment credential.
	TagLive
)

func (t Tag) String() string {
	switch t {
	case TagTest:
		return "test"
	case TagLive:
		return "live"
	default:
		return "none"
	}
}

// ErrEnvironmentMismatch is returned when the client identifier and secret
// belong to different environments.
var ErrEnvironmentMismatch = errors.New("client id and client secret belong to different environments")

// Resolved holds the endpoints derived for one client. It is computed once and
// never mutated.
type Resolved struct {
	IsTest         bool
	BaseURL        string
	UseEndpoint    string
	CreateEndpoint string
	PAREndpoint    string
}

// ClientIDTag returns the environment tag of a client identifier.
func ClientIDTag(clientID string) Tag {
	return tagOf(clientID, ClientIDTestPrefix, ClientIDLivePrefix)
}

// SecretTag returns the environment tag of a client secret.
func SecretTag(secret string) Tag {
	return tagOf(secret, SecretTestPrefix, SecretLivePrefix)
}

func tagOf(s, testPrefix, livePrefix string) Tag {
	switch {
	case strings.HasPrefix(s, testPrefix):
		return TagTest
	case strings.HasPrefix(s, livePrefix):
		return TagLive
	default:
		return TagNone
	}
}

// Resolve derives the endpoints for a client. baseOverride, when non-empty,
// replaces the environment's base URL.
func Resolve(clientID, clientSecret, baseOverride string) (Resolved, error) {
	idTag := ClientIDTag(clientID)
	secretTag := SecretTag(clientSecret)

	if idTag != TagNone && secretTag != TagNone && idTag != secretTag {
		return Resolved{}, fmt.Errorf("%w: client id is %s, client secret is %s",
			ErrEnvironmentMismatch, idTag, secretTag)
	}

	effective := idTag
	if effective == TagNone {
		effective = secretTag
	}
	isTest := effective == TagTest

	base := LiveBaseURL
	if isTest {
		base = TestBaseURL
	}
	if baseOverride != "" {
		base = baseOverride
	}
	base = strings.TrimRight(base, "/")

	return Resolved{
		IsTest:         isTest,
		BaseURL:        base,
		UseEndpoint:    base + UsePath,
		CreateEndpoint: base + CreatePath,
		PAREndpoint:    base + PARPath,
	}, nil
}
