// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/eyad6789/images-with-memory/internal/crypto"

// validate checks that the final merged [Config] satisfies all application
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *Config) validate() error {
	if cfg.Batch.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if cfg.Batch.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if cfg.Cipher.Iterations < crypto.MinKDFIterations {
		return ErrInvalidIterations
	}

	if cfg.Output.Format != OutputText && cfg.Output.Format != OutputJSON {
		return ErrUnknownOutput
	}

	return nil
}
