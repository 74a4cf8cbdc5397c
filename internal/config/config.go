package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrUnknownBackend  = errors.New("unknown storage backend")
)

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Region         string `toml:"region"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// StorageConfig selects where clients and notes live: "memory", "sqlite"
// or "memgraph".
type StorageConfig struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
	SeedPath   string `toml:"seed_path"`
}

// AnalysisPrompts hold one fmt template per note analysis. Each takes the
// note text as its single %s.
type AnalysisPrompts struct {
	Sentiment    string `toml:"sentiment"`
	Emotion      string `toml:"emotion"`
	Safeguarding string `toml:"safeguarding"`
}

// SummaryPrompts.Distribution takes the sentiment and emotion lines, in that order.
type SummaryPrompts struct {
	Distribution string `toml:"distribution"`
}

type SamplingConfig struct {
	AnalysisTemperature float32 `toml:"analysis_temperature"`
	SummaryTemperature  float32 `toml:"summary_temperature"`
	SummaryMaxTokens    int     `toml:"summary_max_tokens"`
}

type ConcurrencyConfig struct {
	ParallelEnrichment bool `toml:"parallel_enrichment"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Storage     StorageConfig     `toml:"storage"`
	Analysis    AnalysisPrompts   `toml:"analysis"`
	Summary     SummaryPrompts    `toml:"summary"`
	Sampling    SamplingConfig    `toml:"sampling"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Logging     LoggingConfig     `toml:"logging"`
}

// Default returns a configuration that runs against a local Ollama with
// in-memory storage.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "gpt-oss:latest",
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 60,
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Storage:  StorageConfig{Backend: "memory", SQLitePath: "carelens.db"},
		Analysis: AnalysisPrompts{
			Sentiment:    DefaultSentimentPrompt,
			Emotion:      DefaultEmotionPrompt,
			Safeguarding: DefaultSafeguardingPrompt,
		},
		Summary: SummaryPrompts{Distribution: DefaultDistributionPrompt},
		Sampling: SamplingConfig{
			AnalysisTemperature: 0,
			SummaryTemperature:  0.7,
			SummaryMaxTokens:    200,
		},
		Concurrency: ConcurrencyConfig{ParallelEnrichment: true},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load decodes the TOML file at path over Default. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "ollama", "claude", "gemini", "ark":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLM.Provider)
	}

	switch c.Storage.Backend {
	case "memory", "memgraph":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	prompts := map[string]struct {
		text  string
		slots int
	}{
		"analysis.sentiment":    {c.Analysis.Sentiment, 1},
		"analysis.emotion":      {c.Analysis.Emotion, 1},
		"analysis.safeguarding": {c.Analysis.Safeguarding, 1},
		"summary.distribution":  {c.Summary.Distribution, 2},
	}
	for name, p := range prompts {
		if n := strings.Count(p.text, "%s"); n != p.slots {
			return fmt.Errorf("prompt %s must contain %d %%s placeholder(s), found %d", name, p.slots, n)
		}
	}

	if t := c.Sampling.AnalysisTemperature; t < 0 || t > 2 {
		return fmt.Errorf("sampling.analysis_temperature out of range: %v", t)
	}
	if t := c.Sampling.SummaryTemperature; t < 0 || t > 2 {
		return fmt.Errorf("sampling.summary_temperature out of range: %v", t)
	}
	if c.Sampling.SummaryMaxTokens <= 0 {
		return fmt.Errorf("sampling.summary_max_tokens must be positive, got %d", c.Sampling.SummaryMaxTokens)
	}
	return nil
}
