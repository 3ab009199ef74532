// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package securetoken generates the high-entropy state and nonce values used
// to correlate an authorization request with its callback.
package securetoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultSize is the number of random bytes in a generated token.
// Tokens are hex encoded, so the string is twice as long.
const DefaultSize = 32

// Generate reads n bytes from src and returns them hex encoded.
// A nil src uses crypto/rand.Reader.
func Generate(src io.Reader, n int) (string, error) {
	if src == nil {
		src = rand.Reader
	}
	if n <= 0 {
		n = DefaultSize
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Pair is a freshly generated state and nonce.
type Pair struct {
	State string
	Nonce string
}

// NewPair generates an independent state and nonce from src.
func NewPair(src io.Reader) (Pair, error) {
	state, err := Generate(src, DefaultSize)
	if err != nil {
		return Pair{}, fmt.Errorf("state: %w", err)
	}
	nonce, err := Generate(src, DefaultSize)
	if err != nil {
		return Pair{}, fmt.Errorf("nonce: %w", err)
	}
	return Pair{State: state, Nonce: nonce}, nil
}
