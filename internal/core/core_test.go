package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/store"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

// countingEnricher labels text by keyword and records every call.
type countingEnricher struct {
	mu    sync.Mutex
	texts []string
}

func (e *countingEnricher) Enrich(_ context.Context, text string) model.Enrichment {
	e.mu.Lock()
	e.texts = append(e.texts, text)
	e.mu.Unlock()

	sentiment := model.Neutral
	tags := model.EmotionTags{}
	switch {
	case strings.Contains(text, "happy"):
		sentiment = model.Positive
		tags["joy"] = 0.9
	case strings.Contains(text, "upset"):
		sentiment = model.Negative
		tags["distress"] = 0.6
	}
	return model.Enrichment{
		Sentiment:             sentiment,
		EmotionTags:           tags,
		SafeguardingNarrative: "Reviewed: " + text,
		TextHash:              model.HashText(text),
	}
}

func (e *countingEnricher) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.texts)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type fixture struct {
	store    *store.MemoryStore
	enricher *countingEnricher
	clients  *Clients
	notes    *Notes
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemoryStore()
	enricher := &countingEnricher{}

	clients := NewClients(st)
	clients.NewID = sequentialIDs("client")
	clients.Now = func() time.Time { return fixedNow }

	notes := NewNotes(st, enricher, nil)
	notes.NewID = sequentialIDs("note")
	tick := fixedNow
	notes.Now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	return &fixture{store: st, enricher: enricher, clients: clients, notes: notes}
}

func (f *fixture) client(t *testing.T, first, last string) model.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), model.Client{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: time.Date(1945, 1, 20, 0, 0, 0, 0, time.UTC),
		Gender:      model.Other,
	})
	require.NoError(t, err)
	return c
}
