package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONConfig mirrors [Config] with JSON field tags for the optional config
// file. Durations are accepted as Go duration strings ("30s", "1m").
type JSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Batch struct {
		Concurrency int      `json:"concurrency"`
		FailFast    bool     `json:"fail_fast"`
		Timeout     Duration `json:"timeout"`
	} `json:"batch,omitempty"`

	Cipher struct {
		Iterations int `json:"iterations"`
	} `json:"cipher,omitempty"`

	Output struct {
		Format string `json:"format"`
	} `json:"output,omitempty"`

	LogLevel string `json:"log_level"`
	LogJSON  bool   `json:"log_json"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Batch: Batch{
			Concurrency: jsonCfg.Batch.Concurrency,
			FailFast:    jsonCfg.Batch.FailFast,
			Timeout:     time.Duration(jsonCfg.Batch.Timeout),
		},
		Cipher: Cipher{
			Iterations: jsonCfg.Cipher.Iterations,
		},
		Output: Output{
			Format: jsonCfg.Output.Format,
		},
		LogLevel:     jsonCfg.LogLevel,
		LogJSON:      jsonCfg.LogJSON,
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
