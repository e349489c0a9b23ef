//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the VIDPF system.
package env

import (
	"crypto/rand"
	"io"
	"log/slog"

	"github.com/markkurossi/vidpf/xof"
)

var (
	discard = slog.New(slog.DiscardHandler)
	randDST = xof.DST("VIDPF", "DeterministicRand")
)

// Config defines the global system configuration for the VIDPF
// system. Config must not be modified after being passed to any
// module. It is safe for concurrent use by multiple modules as they do
// not modify it.
type Config struct {
	// Rand is the source of entropy for key generation. If nil,
	// crypto/rand is used.
	Rand io.Reader

	// Logger receives debug information about protocol runs. Key
	// material is never logged. If nil, log records are discarded.
	Logger *slog.Logger
}

// GetRandom returns the source of entropy for key generation.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the configured logger.
func (config *Config) GetLogger() *slog.Logger {
	if config != nil && config.Logger != nil {
		return config.Logger
	}
	return discard
}

// NewDeterministicRand creates a deterministic random stream from the
// seed. The stream is suitable for reproducible tests and tooling but
// it must not be used for production keys.
func NewDeterministicRand(seed []byte) io.Reader {
	return xof.ChaCha20{}.Stream(seed, randDST, nil)
}
