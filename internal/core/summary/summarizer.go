// Package summary produces the narrative that accompanies a distribution
// report.
package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agenthands/carelens/internal/config"
	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/llm"
	"go.uber.org/zap"
)

// Fallback is returned whenever no summary could be generated.
const Fallback = "Unable to generate analysis summary at this time."

var errEmptySummary = errors.New("empty summary")

type Summarizer struct {
	LLM      llm.LLMClient
	Prompts  config.SummaryPrompts
	Sampling config.SamplingConfig
	Logger   *zap.Logger
}

func NewSummarizer(llmClient llm.LLMClient, prompts config.SummaryPrompts, sampling config.SamplingConfig, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		LLM:      llmClient,
		Prompts:  prompts,
		Sampling: sampling,
		Logger:   logger,
	}
}

// Summarize asks the LLM for a short analysis of the distributions. It never
// fails: any error, including an empty reply, yields Fallback. An empty
// distribution is still sent to the model.
func (s *Summarizer) Summarize(ctx context.Context, sentiments []model.SentimentCount, emotions map[string]float64) string {
	prompt := fmt.Sprintf(s.Prompts.Distribution, FormatSentiments(sentiments), FormatEmotions(emotions))

	opts := []llm.Option{llm.WithTemperature(s.Sampling.SummaryTemperature)}
	if s.Sampling.SummaryMaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.Sampling.SummaryMaxTokens))
	}

	response, err := s.LLM.Generate(ctx, prompt, opts...)
	if err == nil {
		response = strings.TrimSpace(response)
		if response == "" {
			err = errEmptySummary
		}
	}
	if err != nil {
		s.Logger.Error("Error generating analysis summary", zap.Error(err))
		return Fallback
	}
	return response
}

// FormatSentiments renders counts as "Positive (2 occurrences), Negative (1 occurrences)".
func FormatSentiments(counts []model.SentimentCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d occurrences)", c.Sentiment, c.Count))
	}
	return strings.Join(parts, ", ")
}

// FormatEmotions renders proportions as "anxiety: 0.86, sadness: 0.14",
// sorted by emotion name.
func FormatEmotions(emotions map[string]float64) string {
	names := make([]string, 0, len(emotions))
	for name := range emotions {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strconv.FormatFloat(emotions[name], 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}
