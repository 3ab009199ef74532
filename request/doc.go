// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package request renders AgeKey authorization requests: the Use-flow
// authorization URL, the Create-flow pushed authorization request body, and
// the Create-flow authorization URL that references a pushed request.
//
// Renderers are pure apart from drawing state and nonce values from the
// configured random source. Serialized claims and authorization details are
// checked against the embedded schemas before a request is returned.
package request
