package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration values are missing or out of range.
var (
	// ErrInvalidConcurrency indicates a non-positive batch worker count.
	ErrInvalidConcurrency = errors.New("invalid batch concurrency")
	// ErrInvalidTimeout indicates a negative batch run timeout.
	ErrInvalidTimeout = errors.New("invalid batch timeout")
	// ErrInvalidIterations indicates a KDF iteration count below the
	// minimum the cipher accepts.
	ErrInvalidIterations = errors.New("invalid cipher iterations")
	// ErrUnknownOutput indicates an output format other than text or json.
	ErrUnknownOutput = errors.New("unknown output format")
)
