package enrichment

import (
	"context"

	"github.com/agenthands/carelens/internal/core/analysis"
	"github.com/agenthands/carelens/internal/core/model"
	"golang.org/x/sync/errgroup"
)

// Analyses is the analysis surface a Pipeline needs.
type Analyses interface {
	ClassifySentiment(ctx context.Context, text string) analysis.Result[model.Sentiment]
	TagEmotions(ctx context.Context, text string) analysis.Result[model.EmotionTags]
	EvaluateSafeguarding(ctx context.Context, text string) analysis.Result[string]
}

type Pipeline struct {
	Analyzer Analyses
	Parallel bool
}

func NewPipeline(analyzer Analyses, parallel bool) *Pipeline {
	return &Pipeline{Analyzer: analyzer, Parallel: parallel}
}

// Enrich runs the three analyses over text. Each one degrades on its own, so
// the returned record is always complete.
func (p *Pipeline) Enrich(ctx context.Context, text string) model.Enrichment {
	var (
		sentiment analysis.Result[model.Sentiment]
		emotions  analysis.Result[model.EmotionTags]
		narrative analysis.Result[string]
	)

	steps := []func(){
		func() { sentiment = p.Analyzer.ClassifySentiment(ctx, text) },
		func() { emotions = p.Analyzer.TagEmotions(ctx, text) },
		func() { narrative = p.Analyzer.EvaluateSafeguarding(ctx, text) },
	}

	if p.Parallel {
		// Analyses never fail, so the group only joins.
		var g errgroup.Group
		for _, step := range steps {
			g.Go(func() error {
				step()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, step := range steps {
			step()
		}
	}

	tags := emotions.Value
	if tags == nil {
		tags = model.EmotionTags{}
	}
	story := narrative.Value
	if story == "" {
		story = analysis.SafeguardingFallback
	}
	mood := sentiment.Value
	if !mood.Valid() {
		mood = model.Uncategorised
	}

	return model.Enrichment{
		Sentiment:             mood,
		EmotionTags:           tags,
		SafeguardingNarrative: story,
		TextHash:              model.HashText(text),
	}
}
