// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the process-wide zap logger used by the agekey
// command, and bridges it to logr and slog for the SDK.
package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CadamTech/agekey-sdk/env"
)

// UnstructuredLogsEnv selects console output when true or unset, JSON when false.
const UnstructuredLogsEnv = "UNSTRUCTURED_LOGS"

// Debugf logs a message at debug level using the singleton logger.
func Debugf(msg string, args ...any) {
	zap.S().Debugf(msg, args...)
}

// Debugw logs a message at debug level with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	zap.S().Debugw(msg, keysAndValues...)
}

// Info logs a message at info level using the singleton logger.
func Info(msg string) {
	zap.S().Info(msg)
}

// Infof logs a message at info level using the singleton logger.
func Infof(msg string, args ...any) {
	zap.S().Infof(msg, args...)
}

// Infow logs a message at info level with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	zap.S().Infow(msg, keysAndValues...)
}

// Warnw logs a message at warning level with additional key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	zap.S().Warnw(msg, keysAndValues...)
}

// Errorf logs a message at error level using the singleton logger.
func Errorf(msg string, args ...any) {
	zap.S().Errorf(msg, args...)
}

// Errorw logs a message at error level with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	zap.S().Errorw(msg, keysAndValues...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = zap.L().Sync()
}

// NewLogr returns a logr.Logger backed by the singleton zap logger.
func NewLogr() logr.Logger {
	return zapr.NewLogger(zap.L())
}

// NewSlog returns an *slog.Logger backed by the singleton zap logger, for
// handing to agekey.WithLogger.
func NewSlog() *slog.Logger {
	return slog.New(logr.ToSlogHandler(NewLogr()))
}

// DebugProvider reports whether debug logging is enabled.
type DebugProvider interface {
	IsDebug() bool
}

// StaticDebug is a DebugProvider with a fixed answer, typically a flag value.
type StaticDebug bool

// IsDebug implements DebugProvider.
func (d StaticDebug) IsDebug() bool {
	return bool(d)
}

// Initialize configures the singleton logger from the process environment.
func Initialize(debug DebugProvider) {
	InitializeWithOptions(&env.OSReader{}, debug)
}

// InitializeWithOptions configures the singleton logger. When
// UNSTRUCTURED_LOGS is true or unset, output is colored console text on
// stderr; otherwise it is JSON on stdout.
func InitializeWithOptions(envReader env.Reader, debug DebugProvider) {
	zap.ReplaceGlobals(zap.Must(buildConfig(envReader, debug).Build()))
}

func buildConfig(envReader env.Reader, debug DebugProvider) zap.Config {
	var config zap.Config
	if unstructuredLogsWithEnv(envReader) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		config.OutputPaths = []string{"stderr"}
		config.DisableStacktrace = true
		config.DisableCaller = true
	} else {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
	}

	if debug != nil && debug.IsDebug() {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return config
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	unstructuredLogs, err := strconv.ParseBool(envReader.Getenv(UnstructuredLogsEnv))
	if err != nil {
		// unset or unparsable
		return true
	}
	return unstructuredLogs
}
