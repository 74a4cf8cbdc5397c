package core

import (
	"context"
	"fmt"

	"github.com/agenthands/carelens/internal/core/aggregate"
	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/core/summary"
	"github.com/agenthands/carelens/internal/store"
	"go.uber.org/zap"
)

// Narrator writes the summary paragraph of a report.
type Narrator interface {
	Summarize(ctx context.Context, sentiments []model.SentimentCount, emotions map[string]float64) string
}

type Analytics struct {
	Store    store.Store
	Narrator Narrator
	Logger   *zap.Logger
}

func NewAnalytics(st store.Store, narrator Narrator, logger *zap.Logger) *Analytics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analytics{Store: st, Narrator: narrator, Logger: logger}
}

// Report reads the client's notes once and builds the distribution report
// from that snapshot. Only a missing client or a storage failure is an error.
func (a *Analytics) Report(ctx context.Context, clientID string) (model.DistributionReport, error) {
	notes, err := a.Store.ListNotes(ctx, clientID)
	if err != nil {
		return model.DistributionReport{}, fmt.Errorf("client %s: %w", clientID, err)
	}

	sentiments, emotions := aggregate.Distribute(notes)

	text := a.Narrator.Summarize(ctx, sentiments, emotions)
	if text == "" {
		text = summary.Fallback
	}

	a.Logger.Debug("Report built",
		zap.String("client_id", clientID),
		zap.Int("notes", len(notes)),
		zap.Int("emotions", len(emotions)))

	return model.DistributionReport{
		SentimentDistribution: sentiments,
		EmotionDistribution:   emotions,
		Summary:               text,
	}, nil
}
