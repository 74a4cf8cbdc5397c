package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, float32(0.7), cfg.Sampling.SummaryTemperature)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[llm]
provider = "claude"
model = "claude-3-5-haiku-latest"

[storage]
backend = "sqlite"
sqlite_path = "/tmp/notes.db"

[analysis]
sentiment = "Rate: %s"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "Rate: %s", cfg.Analysis.Sentiment)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultEmotionPrompt, cfg.Analysis.Emotion)
	assert.Equal(t, 200, cfg.Sampling.SummaryMaxTokens)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRepositoryConfig(t *testing.T) {
	cfg, err := Load("../../config/config.toml")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "watson"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)

	cfg = Default()
	cfg.Storage.Backend = "postgres"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownBackend)

	cfg = Default()
	cfg.Summary.Distribution = "only %s"
	assert.ErrorContains(t, cfg.Validate(), "summary.distribution")

	cfg = Default()
	cfg.Sampling.SummaryTemperature = 3
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Sampling.SummaryMaxTokens = 0
	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("STORAGE_BACKEND", "memgraph")
	t.Setenv("SUMMARY_TEMPERATURE", "0.2")
	t.Setenv("SUMMARY_MAX_TOKENS", "150")
	t.Setenv("LLM_TIMEOUT_SECONDS", "15")
	t.Setenv("ENRICH_PARALLEL", "false")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "memgraph", cfg.Storage.Backend)
	assert.Equal(t, float32(0.2), cfg.Sampling.SummaryTemperature)
	assert.Equal(t, 150, cfg.Sampling.SummaryMaxTokens)
	assert.Equal(t, 15, cfg.LLM.TimeoutSeconds)
	assert.False(t, cfg.Concurrency.ParallelEnrichment)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SUMMARY_MAX_TOKENS", "lots")
	assert.Error(t, Default().ApplyEnv())
}

func TestParseAddr(t *testing.T) {
	addr, err := parseAddr("127.0.0.1:8081")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", addr)

	_, err = parseAddr("80 80")
	assert.Error(t, err)
}
