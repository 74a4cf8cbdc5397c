package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides file settings with environment variables when present.
func (c *Config) ApplyEnv() error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		addr, err := parseAddr(port)
		if err != nil {
			return err
		}
		c.Server.Addr = addr
	}

	overrideString(&c.LLM.Provider, "LLM_PROVIDER")
	overrideString(&c.LLM.Model, "LLM_MODEL")
	overrideString(&c.LLM.APIKey, "LLM_API_KEY")
	overrideString(&c.LLM.BaseURL, "LLM_BASE_URL")
	overrideString(&c.LLM.Region, "LLM_REGION")
	overrideString(&c.Memgraph.URI, "MEMGRAPH_URI")
	overrideString(&c.Memgraph.User, "MEMGRAPH_USER")
	overrideString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	overrideString(&c.Storage.Backend, "STORAGE_BACKEND")
	overrideString(&c.Storage.SQLitePath, "SQLITE_PATH")
	overrideString(&c.Storage.SeedPath, "SEED_PATH")
	overrideString(&c.Logging.Level, "LOG_LEVEL")

	timeout, err := parseOptionalIntEnv("LLM_TIMEOUT_SECONDS")
	if err != nil {
		return err
	}
	if timeout != nil {
		c.LLM.TimeoutSeconds = *timeout
	}

	temperature, err := parseOptionalFloat32Env("SUMMARY_TEMPERATURE")
	if err != nil {
		return err
	}
	if temperature != nil {
		c.Sampling.SummaryTemperature = *temperature
	}

	maxTokens, err := parseOptionalIntEnv("SUMMARY_MAX_TOKENS")
	if err != nil {
		return err
	}
	if maxTokens != nil {
		c.Sampling.SummaryMaxTokens = *maxTokens
	}

	if c.Logging.Development, err = parseBoolEnv("LOG_DEVELOPMENT", c.Logging.Development); err != nil {
		return err
	}
	if c.Concurrency.ParallelEnrichment, err = parseBoolEnv("ENRICH_PARALLEL", c.Concurrency.ParallelEnrichment); err != nil {
		return err
	}
	return nil
}

// parseAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func parseAddr(port string) (string, error) {
	if strings.Contains(port, ":") {
		return port, nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	return ":" + port, nil
}

func overrideString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
