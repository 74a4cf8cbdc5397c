package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkClient talks to Volcengine Ark through an eino chat model.
type ArkClient struct {
	model einomodel.ChatModel
}

func NewArkClient(ctx context.Context, apiKey, model, baseURL, region string) (*ArkClient, error) {
	cfg := &ark.ChatModelConfig{
		BaseURL: baseURL,
		Region:  region,
		APIKey:  apiKey,
		Model:   model,
	}
	chatModel, err := ark.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}
	return &ArkClient{model: chatModel}, nil
}

func (c *ArkClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := Collect(opts)
	var einoOpts []einomodel.Option
	if o.Temperature != nil {
		einoOpts = append(einoOpts, einomodel.WithTemperature(*o.Temperature))
	}
	if o.MaxTokens > 0 {
		einoOpts = append(einoOpts, einomodel.WithMaxTokens(o.MaxTokens))
	}

	msg, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, einoOpts...)
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("no response message")
	}
	return msg.Content, nil
}
