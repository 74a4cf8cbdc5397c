package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Sentiment string

const (
	Positive      Sentiment = "Positive"
	Neutral       Sentiment = "Neutral"
	Negative      Sentiment = "Negative"
	Uncategorised Sentiment = "Uncategorised"
)

// Sentiments returns every category in display order.
func Sentiments() []Sentiment {
	return []Sentiment{Positive, Neutral, Negative, Uncategorised}
}

func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Neutral, Negative, Uncategorised:
		return true
	}
	return false
}

// EmotionTags maps an emotion name to an intensity in [0,1].
type EmotionTags map[string]float64

func (t EmotionTags) Clone() EmotionTags {
	out := make(EmotionTags, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

type AnalysisState string

const (
	Unanalyzed AnalysisState = "unanalyzed"
	Analyzed   AnalysisState = "analyzed"
)

type Note struct {
	ID                    string      `json:"id"`
	ClientID              string      `json:"care_client"`
	AuthorID              string      `json:"created_by"`
	CreatedAt             time.Time   `json:"created_at"`
	Text                  string      `json:"note_text"`
	Sentiment             Sentiment   `json:"sentiment"`
	EmotionTags           EmotionTags `json:"emotion_tags"`
	SafeguardingNarrative string      `json:"ai_evaluated_notes"`
	AnalyzedHash          string      `json:"analyzed_hash,omitempty"`
	AnalyzedAt            time.Time   `json:"analyzed_at"`
}

// Enrichment is the derived analysis of one note text. The three fields are
// always written to a note together.
type Enrichment struct {
	Sentiment             Sentiment   `json:"sentiment"`
	EmotionTags           EmotionTags `json:"emotion_tags"`
	SafeguardingNarrative string      `json:"safeguarding_narrative"`
	TextHash              string      `json:"text_hash"`
}

// HashText fingerprints note text for the analysis state machine.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (n Note) State() AnalysisState {
	if n.AnalyzedHash == "" {
		return Unanalyzed
	}
	return Analyzed
}

// NeedsAnalysis reports whether text differs from what was last analysed.
func (n Note) NeedsAnalysis(text string) bool {
	return n.State() == Unanalyzed || n.AnalyzedHash != HashText(text)
}

// ApplyEnrichment moves the note to Analyzed(e.TextHash).
func (n *Note) ApplyEnrichment(e Enrichment, at time.Time) {
	n.Sentiment = e.Sentiment
	n.EmotionTags = e.EmotionTags.Clone()
	n.SafeguardingNarrative = e.SafeguardingNarrative
	n.AnalyzedHash = e.TextHash
	n.AnalyzedAt = at
}

// Clone returns a copy that shares no mutable state with n.
func (n Note) Clone() Note {
	out := n
	if n.EmotionTags != nil {
		out.EmotionTags = n.EmotionTags.Clone()
	}
	return out
}
