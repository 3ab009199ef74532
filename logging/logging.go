// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"
)

// Format represents the log output format.
type Format int

const (
	// FormatJSON produces JSON output using [log/slog.JSONHandler]. This is the default.
	FormatJSON Format = iota

	// FormatText produces human-readable output using [log/slog.TextHandler].
	FormatText
)

// Redacted replaces the value of a sensitive attribute.
const Redacted = "[REDACTED]"

// SensitiveKeys are attribute keys redacted by default. They name the values
// that let a third party complete or replay an AgeKey flow.
var SensitiveKeys = []string{
	"client_secret",
	"state",
	"nonce",
	"id_token",
	"request_uri",
	"authorization",
}

type config struct {
	format    Format
	level     slog.Leveler
	output    io.Writer
	sensitive []string
}

// Option configures the logger created by [New].
type Option func(*config)

// WithFormat sets the output format. The default is [FormatJSON].
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithLevel sets the minimum log level. The default is [log/slog.LevelInfo].
// A [*log/slog.LevelVar] allows changing the level at runtime.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the destination writer. The default is [os.Stderr].
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithRedactedKeys adds attribute keys whose values are replaced by [Redacted].
func WithRedactedKeys(keys ...string) Option {
	return func(c *config) {
		c.sensitive = append(c.sensitive, keys...)
	}
}

// New creates a [*log/slog.Logger] with RFC3339 timestamps and [SensitiveKeys]
// redacted.
func New(opts ...Option) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// NewHandler creates the handler used by [New], for callers that wrap it.
func NewHandler(opts ...Option) slog.Handler {
	cfg := &config{
		format:    FormatJSON,
		level:     slog.LevelInfo,
		output:    os.Stderr,
		sensitive: slices.Clone(SensitiveKeys),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       cfg.level,
		ReplaceAttr: replaceAttr(cfg.sensitive),
	}

	if cfg.format == FormatText {
		return slog.NewTextHandler(cfg.output, handlerOpts)
	}
	return slog.NewJSONHandler(cfg.output, handlerOpts)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseFormat parses "json" or "text", ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format %q", s)
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// replaceAttr formats the time attribute to RFC3339 and redacts sensitive keys.
func replaceAttr(sensitive []string) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.Format(time.RFC3339))
			}
			return a
		}
		if slices.Contains(sensitive, strings.ToLower(a.Key)) {
			a.Value = slog.StringValue(Redacted)
		}
		return a
	}
}
