package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Options are per-request sampling hints. Providers ignore hints they
// cannot express.
type Options struct {
	Temperature *float32
	MaxTokens   int
}

type Option func(*Options)

func WithTemperature(t float32) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func Collect(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
