// Package aggregate computes distribution statistics over a client's notes.
// All functions are pure and accept an empty collection.
package aggregate

import (
	"strconv"

	"github.com/agenthands/carelens/internal/core/model"
)

// SentimentDistribution counts notes per sentiment. Only categories present
// in notes are returned, in the order of model.Sentiments.
func SentimentDistribution(notes []model.Note) []model.SentimentCount {
	counts := make(map[model.Sentiment]int)
	for _, n := range notes {
		s := n.Sentiment
		if !s.Valid() {
			s = model.Uncategorised
		}
		counts[s]++
	}

	out := make([]model.SentimentCount, 0, len(counts))
	for _, s := range model.Sentiments() {
		if c := counts[s]; c > 0 {
			out = append(out, model.SentimentCount{Sentiment: s, Count: c})
		}
	}
	return out
}

// EmotionTotals sums each emotion's intensity across notes. Negative scores
// contribute nothing.
func EmotionTotals(notes []model.Note) map[string]float64 {
	totals := make(map[string]float64)
	for _, n := range notes {
		for emotion, score := range n.EmotionTags {
			if score > 0 {
				totals[emotion] += score
			} else if _, seen := totals[emotion]; !seen {
				totals[emotion] = 0
			}
		}
	}
	return totals
}

// EmotionDistribution normalises EmotionTotals to proportions rounded to two
// decimals. The rounded values need not sum to exactly 1. With no positive
// score anywhere the distribution is empty.
func EmotionDistribution(notes []model.Note) map[string]float64 {
	totals := EmotionTotals(notes)

	var grand float64
	for _, v := range totals {
		grand += v
	}

	out := make(map[string]float64, len(totals))
	if grand <= 0 {
		return out
	}
	for emotion, v := range totals {
		out[emotion] = Round2(v / grand)
	}
	return out
}

// Distribute computes both distributions from one snapshot.
func Distribute(notes []model.Note) ([]model.SentimentCount, map[string]float64) {
	return SentimentDistribution(notes), EmotionDistribution(notes)
}

// Round2 rounds to two decimal places, taking exact ties to the even digit:
// 0.125 becomes 0.12 and 0.375 becomes 0.38. The decision is made on the
// exact binary value, so 2.675 (stored just below the tie) becomes 2.67.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
