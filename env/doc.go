// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env abstracts environment variable access so configuration loading can
be tested without touching the process environment.

# Basic Usage

	reader := &env.OSReader{}
	clientID := env.GetOr(reader, "AGEKEY_CLIENT_ID", cfg.ClientID)

MapReader serves fixed values, which suits examples and table tests:

	reader := env.MapReader{"AGEKEY_CLIENT_ID": "ak_test_123"}

# Testing

A generated mock is available in the mocks sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("AGEKEY_CLIENT_ID").Return("ak_test_123")
*/
package env
