package config

import (
	"flag"
	"fmt"
)

// BindFlags registers the shared configuration flags on fs and returns the
// [Config] they populate once fs is parsed.
//
// Flag parsing belongs to the command layer, where every subcommand owns
// its own flag set; this package only declares the bindings. The parsed
// result is handed back to [GetConfig] as the highest-priority source.
//
// Flags:
//
//	-c/-config json file path with configs
//	-jobs parallel workers for scan runs
//	-fail-fast stop a scan on the first failed file
//	-timeout time limit for a whole scan run (e.g., "30s", "1m")
//	-iterations PBKDF2 iteration count for new envelopes
//	-format output format: text or json
//	-log-level log verbosity: debug, info, warn or error
//	-log-json structured JSON log output
func BindFlags(fs *flag.FlagSet) *Config {
	cfg := &Config{}

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.IntVar(&cfg.Batch.Concurrency, "jobs", 0, "Parallel workers for scan runs")
	fs.BoolVar(&cfg.Batch.FailFast, "fail-fast", false, "Stop a scan on the first failed file")
	fs.DurationVar(&cfg.Batch.Timeout, "timeout", 0, "Time limit for a whole scan run (e.g., 30s, 1m)")
	fs.IntVar(&cfg.Cipher.Iterations, "iterations", 0, "PBKDF2 iteration count for new envelopes")
	fs.Var(&outputValue{format: &cfg.Output.Format}, "format", "Output format: text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "Structured JSON log output")

	return cfg
}

// outputValue holds the -format flag target.
// It implements the flag.Value interface.
type outputValue struct {
	format *string
}

// String returns the currently selected output format.
func (v *outputValue) String() string {
	if v.format == nil {
		return ""
	}

	return *v.format
}

// Set validates the input against the supported output formats and stores
// it, so an unknown format is rejected at parse time rather than at render
// time.
func (v *outputValue) Set(s string) error {
	if s != OutputText && s != OutputJSON {
		return fmt.Errorf("%w: %s", ErrUnknownOutput, s)
	}

	*v.format = s
	return nil
}
