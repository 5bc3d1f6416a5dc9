// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"runtime"
	"time"

	"github.com/eyad6789/images-with-memory/internal/crypto"
)

// Output formats accepted by the result renderers.
const (
	// OutputText renders human-readable text.
	OutputText = "text"
	// OutputJSON renders machine-readable JSON.
	OutputJSON = "json"
)

// Config is the top-level configuration container for the memoryink
// application. It aggregates all sub-configurations and is populated by
// merging values from command-line flags, environment variables, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// App holds application-level settings such as the version stamped
	// into embedded notes.
	App App `envPrefix:"APP_"`

	// Batch holds worker pool settings for multi-file scan runs.
	Batch Batch `envPrefix:"BATCH_"`

	// Cipher holds key derivation parameters for note encryption.
	Cipher Cipher `envPrefix:"CIPHER_"`

	// Output holds result rendering settings.
	Output Output `envPrefix:"OUTPUT_"`

	// LogLevel controls logger verbosity: "debug", "info", "warn" or
	// "error".
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogJSON switches log output from the human-readable console writer
	// to structured JSON lines.
	// Env: LOG_JSON
	LogJSON bool `env:"LOG_JSON"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from flags and environment variables.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.0"). Stamped into the version marker of every embedded
	// note and printed by the version subcommand.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Batch holds worker pool settings for scan runs over many files.
type Batch struct {
	// Concurrency is the number of parallel workers a scan run uses.
	// Env: BATCH_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// FailFast stops a scan run on the first failed file instead of
	// collecting errors and continuing.
	// Env: BATCH_FAIL_FAST
	FailFast bool `env:"FAIL_FAST"`

	// Timeout bounds a whole scan run (e.g. "30s", "5m"). Zero means no
	// limit.
	// Env: BATCH_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Cipher holds key derivation parameters for newly encrypted notes.
type Cipher struct {
	// Iterations is the PBKDF2 iteration count recorded in new envelopes.
	// Env: CIPHER_ITERATIONS
	Iterations int `env:"ITERATIONS"`
}

// Output holds result rendering settings.
type Output struct {
	// Format selects the renderer: [OutputText] or [OutputJSON].
	// Env: OUTPUT_FORMAT
	Format string `env:"FORMAT"`
}

// GetConfig loads, merges, and validates the application configuration
// from all available sources in the following priority order (the first
// source to provide a value wins):
//  1. Command-line flags, pre-parsed by the caller and passed as overrides
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *Config or an error if any source fails to
// load or the merged result fails validation.
func GetConfig(overrides *Config) (*Config, error) {
	return newConfigBuilder().
		withFlags(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig is the lowest-priority source: values applied when no
// flag, environment variable or file provides them.
func defaultConfig() *Config {
	return &Config{
		App:      App{Version: "dev"},
		Batch:    Batch{Concurrency: runtime.NumCPU()},
		Cipher:   Cipher{Iterations: crypto.DefaultKDFIterations},
		Output:   Output{Format: OutputText},
		LogLevel: "info",
	}
}
