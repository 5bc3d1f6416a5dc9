package config

import (
	"encoding/json"
	"os"
	"runtime"
	"testing"

	"github.com/eyad6789/images-with-memory/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation: the zero Config has no usable concurrency.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
	assert.Nil(t, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{App: App{Version: "1.0.0"}},
		&Config{Output: Output{Format: OutputJSON}},
		defaultConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
}

// TestBuild_FirstSourceWins verifies the merge precedence: a field already
// present in an earlier config is not overwritten by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{Batch: Batch{Concurrency: 4}},
		&Config{Batch: Batch{Concurrency: 8}, App: App{Version: "2.0.0"}},
		defaultConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "2.0.0", cfg.App.Version)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
}

// TestWithFlags_SkipsNil verifies that nil overrides do not append a config.
func TestWithFlags_SkipsNil(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags(nil)
	assert.Empty(t, b.configs)
}

// TestWithFlags_AppendsOverrides verifies that flag values become the first,
// highest-priority source.
func TestWithFlags_AppendsOverrides(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags(&Config{Batch: Batch{Concurrency: 2}})

	require.Len(t, b.configs, 1)
	assert.Equal(t, 2, b.configs[0].Batch.Concurrency)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("BATCH_CONCURRENCY", "6")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 6, b.configs[0].Batch.Concurrency)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	clearEnvVars(t)

	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_AppendsDefaults verifies the built-in lowest-priority
// source carries the documented default values.
func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.withDefaults()

	require.Len(t, b.configs, 1)
	def := b.configs[0]
	assert.Equal(t, runtime.NumCPU(), def.Batch.Concurrency)
	assert.Equal(t, crypto.DefaultKDFIterations, def.Cipher.Iterations)
	assert.Equal(t, OutputText, def.Output.Format)
	assert.Equal(t, "info", def.LogLevel)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := JSONConfig{}
	payload.App.Version = "json-version"
	payload.Output.Format = OutputJSON
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, OutputJSON, b.configs[1].Output.Format)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that when multiple configs name a
// JSONFilePath, the first one wins, matching field precedence.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	payload := JSONConfig{}
	payload.App.Version = "first-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{JSONFilePath: path},
		&Config{JSONFilePath: "/nonexistent/config.json"},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first-wins", b.configs[2].App.Version)
}

// ── GetConfig ─────────────────────────────────────────────────────────────────

// TestGetConfig_DefaultsOnly verifies the full chain with no flags, env or
// file: the defaults alone produce a valid config.
func TestGetConfig_DefaultsOnly(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Batch.Concurrency)
	assert.Equal(t, crypto.DefaultKDFIterations, cfg.Cipher.Iterations)
	assert.Equal(t, OutputText, cfg.Output.Format)
}

// TestGetConfig_FlagsBeatEnv verifies the documented precedence between the
// two highest-priority sources.
func TestGetConfig_FlagsBeatEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := GetConfig(&Config{Batch: Batch{Concurrency: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
}

// TestGetConfig_InvalidIterations verifies that a below-minimum iteration
// count from the environment fails validation.
func TestGetConfig_InvalidIterations(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("CIPHER_ITERATIONS", "1000")

	cfg, err := GetConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIterations)
	assert.Nil(t, cfg)
}
