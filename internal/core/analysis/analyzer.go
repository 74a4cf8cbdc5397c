package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/carelens/internal/config"
	"github.com/agenthands/carelens/internal/core/common"
	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/llm"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// SafeguardingFallback replaces the narrative when no assessment could be generated.
const SafeguardingFallback = "Safeguarding analysis was unavailable for this note. Please review it manually."

var (
	ErrEmptyResponse    = errors.New("empty response")
	ErrUnexpectedAnswer = errors.New("unexpected answer")
)

type Analyzer struct {
	LLM         llm.LLMClient
	Prompts     config.AnalysisPrompts
	Temperature float32
	Logger      *zap.Logger
}

func NewAnalyzer(llmClient llm.LLMClient, prompts config.AnalysisPrompts, temperature float32, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		LLM:         llmClient,
		Prompts:     prompts,
		Temperature: temperature,
		Logger:      logger,
	}
}

// ClassifySentiment accepts only an exact Positive, Negative or Neutral
// answer. Anything else, including case or punctuation variants, is
// Uncategorised.
func (a *Analyzer) ClassifySentiment(ctx context.Context, text string) Result[model.Sentiment] {
	response, err := a.generate(ctx, a.Prompts.Sentiment, text)
	if err != nil {
		return fallbackTo(a.Logger, "sentiment", model.Uncategorised, err)
	}

	// TODO: lowercase or punctuated answers ("positive.") currently fall to
	// Uncategorised; decide with the care team whether to normalise them.
	switch answer := model.Sentiment(strings.TrimSpace(response)); answer {
	case model.Positive, model.Negative, model.Neutral:
		return success(answer)
	default:
		return fallbackTo(a.Logger, "sentiment", model.Uncategorised, fmt.Errorf("%w: %.40q", ErrUnexpectedAnswer, response))
	}
}

// TagEmotions keeps every emotion whose intensity coerces to a float in
// [0,1] and silently drops the rest. A response that is not a single JSON
// object yields no tags.
func (a *Analyzer) TagEmotions(ctx context.Context, text string) Result[model.EmotionTags] {
	response, err := a.generate(ctx, a.Prompts.Emotion, text)
	if err != nil {
		return fallbackTo(a.Logger, "emotion", model.EmotionTags{}, err)
	}

	obj, err := common.ParseObject(response)
	if err != nil {
		return fallbackTo(a.Logger, "emotion", model.EmotionTags{}, err)
	}

	// A repeated key keeps only its last value, valid or not.
	last := make(map[string]gjson.Result)
	obj.ForEach(func(key, value gjson.Result) bool {
		last[key.String()] = value
		return true
	})

	tags := model.EmotionTags{}
	for emotion, value := range last {
		score, ok := common.Float(value)
		if ok && score >= 0 && score <= 1 {
			tags[emotion] = score
		}
	}
	return success(tags)
}

func (a *Analyzer) EvaluateSafeguarding(ctx context.Context, text string) Result[string] {
	response, err := a.generate(ctx, a.Prompts.Safeguarding, text)
	if err != nil {
		return fallbackTo(a.Logger, "safeguarding", SafeguardingFallback, err)
	}
	return success(strings.TrimSpace(response))
}

// generate returns a non-blank response or an error.
func (a *Analyzer) generate(ctx context.Context, template, text string) (string, error) {
	prompt := fmt.Sprintf(template, text)

	response, err := a.LLM.Generate(ctx, prompt, llm.WithTemperature(a.Temperature))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return "", ErrEmptyResponse
	}
	return response, nil
}

func fallbackTo[T any](logger *zap.Logger, kind string, fallback T, reason error) Result[T] {
	logger.Warn("analysis degraded to fallback", zap.String("analysis", kind), zap.Error(reason))
	return degraded(fallback, reason)
}
