// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes Prometheus counters for AgeKey flows: authorization
// URLs built, pushed authorization requests and callbacks handled.
//
// A nil *Metrics is valid and records nothing.
package metrics
