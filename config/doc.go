// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads the agekey command configuration.

Settings are read from a YAML file, then overridden by environment variables.
Without an explicit path the file is $XDG_CONFIG_HOME/agekey/config.yaml, and
a missing default file is not an error.

	client_id: ak_test_abc
	client_secret: sk_test_def
	redirect_uri: http://localhost:8080/callback
	server:
	  listen_addr: ":8080"
	  policy: 'age_thresholds["18"]'
	  shutdown_timeout: 10s
	log:
	  level: info
	  format: text

Environment overrides:

	AGEKEY_CLIENT_ID       client_id
	AGEKEY_CLIENT_SECRET   client_secret
	AGEKEY_REDIRECT_URI    redirect_uri
	AGEKEY_API_BASE_URL    api_base_url
	AGEKEY_LISTEN_ADDR     server.listen_addr
	AGEKEY_POLICY          server.policy
	AGEKEY_LOG_LEVEL       log.level
*/
package config
