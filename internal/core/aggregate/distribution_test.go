package aggregate

import (
	"math"
	"testing"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notesWith(sentiments ...model.Sentiment) []model.Note {
	notes := make([]model.Note, len(sentiments))
	for i, s := range sentiments {
		notes[i] = model.Note{Sentiment: s}
	}
	return notes
}

func TestSentimentDistribution(t *testing.T) {
	got := SentimentDistribution(notesWith(model.Positive, model.Positive, model.Negative))

	assert.ElementsMatch(t, []model.SentimentCount{
		{Sentiment: model.Positive, Count: 2},
		{Sentiment: model.Negative, Count: 1},
	}, got)
}

func TestSentimentDistributionCanonicalOrder(t *testing.T) {
	got := SentimentDistribution(notesWith(model.Uncategorised, model.Negative, model.Neutral, model.Positive, model.Negative))

	require.Len(t, got, 4)
	assert.Equal(t, model.Positive, got[0].Sentiment)
	assert.Equal(t, model.Neutral, got[1].Sentiment)
	assert.Equal(t, model.Negative, got[2].Sentiment)
	assert.Equal(t, 2, got[2].Count)
	assert.Equal(t, model.Uncategorised, got[3].Sentiment)
}

func TestSentimentDistributionUnknownLabel(t *testing.T) {
	got := SentimentDistribution(notesWith("", "Mixed"))
	assert.Equal(t, []model.SentimentCount{{Sentiment: model.Uncategorised, Count: 2}}, got)
}

func TestEmotionDistribution(t *testing.T) {
	notes := []model.Note{
		{EmotionTags: model.EmotionTags{"anxiety": 0.8}},
		{EmotionTags: model.EmotionTags{"anxiety": 0.4, "sadness": 0.2}},
	}

	totals := EmotionTotals(notes)
	assert.InDelta(t, 1.2, totals["anxiety"], 1e-9)
	assert.InDelta(t, 0.2, totals["sadness"], 1e-9)

	assert.Equal(t, map[string]float64{"anxiety": 0.86, "sadness": 0.14}, EmotionDistribution(notes))
}

func TestEmotionDistributionRoundingNotRenormalised(t *testing.T) {
	notes := []model.Note{{EmotionTags: model.EmotionTags{"a": 0.5, "b": 0.5, "c": 0.5}}}

	got := EmotionDistribution(notes)
	assert.Equal(t, map[string]float64{"a": 0.33, "b": 0.33, "c": 0.33}, got)

	var sum float64
	for _, v := range got {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 0.01*float64(len(got)))
	assert.NotEqual(t, 1.0, sum)
}

func TestEmotionDistributionEmpty(t *testing.T) {
	cases := map[string][]model.Note{
		"no notes":      nil,
		"no tags":       {{Sentiment: model.Positive}, {EmotionTags: model.EmotionTags{}}},
		"all zero":      {{EmotionTags: model.EmotionTags{"calm": 0}}},
		"only negative": {{EmotionTags: model.EmotionTags{"calm": -0.5}}},
	}
	for name, notes := range cases {
		got := EmotionDistribution(notes)
		assert.NotNil(t, got, name)
		assert.Empty(t, got, name)
	}
}

func TestEmotionDistributionZeroScoreKept(t *testing.T) {
	notes := []model.Note{{EmotionTags: model.EmotionTags{"joy": 1, "calm": 0}}}
	assert.Equal(t, map[string]float64{"joy": 1, "calm": 0}, EmotionDistribution(notes))
}

func TestEmotionDistributionBounds(t *testing.T) {
	notes := []model.Note{
		{EmotionTags: model.EmotionTags{"a": 0.1, "b": 0.9, "c": 0.33}},
		{EmotionTags: model.EmotionTags{"a": 0.7, "d": 0.05}},
		{EmotionTags: model.EmotionTags{"e": 1}},
	}
	got := EmotionDistribution(notes)

	var sum float64
	for name, v := range got {
		assert.True(t, v >= 0 && v <= 1, name)
		sum += v
	}
	assert.True(t, sum >= 0 && sum <= float64(len(got)))
	assert.InDelta(t, 1.0, sum, 0.005*float64(len(got)))
}

func TestDistributeZeroNotes(t *testing.T) {
	sentiments, emotions := Distribute(nil)
	assert.NotNil(t, sentiments)
	assert.Empty(t, sentiments)
	assert.NotNil(t, emotions)
	assert.Empty(t, emotions)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.86, Round2(1.2/1.4))
	assert.Equal(t, 0.14, Round2(0.2/1.4))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.False(t, math.IsNaN(Round2(0)))
}

func TestRound2TiesToEven(t *testing.T) {
	assert.Equal(t, 0.12, Round2(0.125))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 0.62, Round2(0.625))
	assert.Equal(t, 0.5, Round2(0.5))
	// 2.675 is stored just below the tie.
	assert.Equal(t, 2.67, Round2(2.675))
	// 0.005 is stored just above it.
	assert.Equal(t, 0.01, Round2(0.005))
}

func TestEmotionDistributionTiesToEven(t *testing.T) {
	notes := []model.Note{{EmotionTags: model.EmotionTags{"a": 0.125, "b": 0.375, "c": 0.5}}}
	assert.Equal(t, map[string]float64{"a": 0.12, "b": 0.38, "c": 0.5}, EmotionDistribution(notes))
}
