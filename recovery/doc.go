// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers.
//
// The middleware turns a handler panic into a 500 Internal Server Error and
// logs the panic with its stack, so one bad callback request cannot take the
// relying-party server down.
//
// # Basic Usage
//
//	r := chi.NewRouter()
//	r.Use(recovery.Middleware(logger))
package recovery
