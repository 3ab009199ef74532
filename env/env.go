// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader implements Reader over a fixed set of values.
type MapReader map[string]string

// Getenv returns the value stored under key.
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// GetOr returns the value of key, or fallback when it is unset or empty.
func GetOr(r Reader, key, fallback string) string {
	if v := r.Getenv(key); v != "" {
		return v
	}
	return fallback
}
