// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging builds [log/slog.Logger] values for AgeKey integrations.

# Defaults

  - Format: JSON ([FormatJSON])
  - Level: INFO
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]
  - Redaction: the values of [SensitiveKeys] are replaced by [Redacted]

# Basic Usage

	logger := logging.New()
	client, err := agekey.New(cfg, agekey.WithLogger(logger))

The SDK logs nothing unless a logger is supplied; [Discard] is its default.

# Configuration

	logger := logging.New(
	    logging.WithFormat(logging.FormatText),
	    logging.WithLevel(slog.LevelDebug),
	    logging.WithOutput(os.Stdout),
	    logging.WithRedactedKeys("email"),
	)

[ParseFormat] and [ParseLevel] turn flag or environment values into options.
*/
package logging
