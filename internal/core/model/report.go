package model

import "encoding/json"

type SentimentCount struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
}

// DistributionReport aggregates a client's notes. It is computed per request
// and never stored.
type DistributionReport struct {
	SentimentDistribution []SentimentCount   `json:"sentiment_distribution"`
	EmotionDistribution   map[string]float64 `json:"emotion_distribution"`
	Summary               string             `json:"analysis_summary"`
}

// MarshalJSON renders empty distributions as [] and {} rather than null.
func (r DistributionReport) MarshalJSON() ([]byte, error) {
	type plain DistributionReport
	out := plain(r)
	if out.SentimentDistribution == nil {
		out.SentimentDistribution = []SentimentCount{}
	}
	if out.EmotionDistribution == nil {
		out.EmotionDistribution = map[string]float64{}
	}
	return json.Marshal(out)
}
