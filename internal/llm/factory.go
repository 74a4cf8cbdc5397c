package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agenthands/carelens/internal/config"
	"go.uber.org/zap"
)

func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (LLMClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := strings.ToLower(cfg.Provider)

	var client LLMClient
	switch provider {
	case "openai":
		client = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		client = c

	case "claude":
		client = NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "ark":
		c, err := NewArkClient(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Region)
		if err != nil {
			return nil, err
		}
		client = c

	case "ollama":
		// Ollama serves an OpenAI-compatible API under /v1.
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		logger.Info("initializing ollama via openai-compatible api", zap.String("base_url", baseURL))

		// The key is ignored by Ollama but required by the client config.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		client = NewOpenAIClient(apiKey, cfg.Model, baseURL)

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}

	if cfg.TimeoutSeconds > 0 {
		client = WithTimeout(client, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return client, nil
}

type timeoutClient struct {
	next    LLMClient
	timeout time.Duration
}

// WithTimeout bounds every Generate call on next.
func WithTimeout(next LLMClient, timeout time.Duration) LLMClient {
	return &timeoutClient{next: next, timeout: timeout}
}

func (c *timeoutClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Generate(ctx, prompt, opts...)
}

// Close forwards to the provider's Close, if it has one.
func (c *timeoutClient) Close() error {
	return Close(c.next)
}

// Close releases the connections held by c. Clients without any are a no-op.
func Close(c LLMClient) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
