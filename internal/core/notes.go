// Package core wires the analysis components to storage: the note service
// enriches notes as they are written and the analytics facade builds
// per-client distribution reports.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTextRequired   = errors.New("note text is required")
	ErrClientRequired = errors.New("client id is required")
)

// Enricher produces the analysis fields for a note text.
type Enricher interface {
	Enrich(ctx context.Context, text string) model.Enrichment
}

type NewNote struct {
	ClientID string `json:"care_client"`
	AuthorID string `json:"created_by"`
	Text     string `json:"note_text"`
}

// NoteUpdate is a partial update; nil fields are left unchanged.
type NoteUpdate struct {
	ClientID *string `json:"care_client"`
	Text     *string `json:"note_text"`
}

type Notes struct {
	Store    store.Store
	Enricher Enricher
	Logger   *zap.Logger

	NewID func() string
	Now   func() time.Time
}

func NewNotes(st store.Store, enricher Enricher, logger *zap.Logger) *Notes {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notes{
		Store:    st,
		Enricher: enricher,
		Logger:   logger,
		NewID:    uuid.NewString,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new note with its analysis already applied.
func (s *Notes) Create(ctx context.Context, in NewNote) (model.Note, error) {
	if in.ClientID == "" {
		return model.Note{}, ErrClientRequired
	}
	if strings.TrimSpace(in.Text) == "" {
		return model.Note{}, ErrTextRequired
	}
	if _, err := s.Store.GetClient(ctx, in.ClientID); err != nil {
		return model.Note{}, fmt.Errorf("client %s: %w", in.ClientID, err)
	}

	now := s.Now()
	note := model.Note{
		ID:        s.NewID(),
		ClientID:  in.ClientID,
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		Text:      in.Text,
	}
	note.ApplyEnrichment(s.Enricher.Enrich(ctx, in.Text), now)

	if err := s.Store.CreateNote(ctx, note); err != nil {
		return model.Note{}, fmt.Errorf("failed to save note: %w", err)
	}

	s.Logger.Info("Note created",
		zap.String("note_id", note.ID),
		zap.String("client_id", note.ClientID),
		zap.String("sentiment", string(note.Sentiment)))
	return note, nil
}

// maxUpdateAttempts bounds retries when another writer edits the same note
// between our read and write.
const maxUpdateAttempts = 3

// Update applies a partial update. The note is re-analysed only when the
// update carries text that differs from the text last analysed; reassigning
// the client alone keeps the existing analysis. The result is written back
// as one record, conditional on the note being unchanged since it was read;
// on a concurrent edit the update is reapplied to the fresh record.
func (s *Notes) Update(ctx context.Context, id string, upd NoteUpdate) (model.Note, error) {
	if upd.ClientID == nil && upd.Text == nil {
		return s.Get(ctx, id)
	}

	// Retries reuse the enrichment of the first attempt.
	var cached *model.Enrichment
	enrich := func(text string) model.Enrichment {
		if cached == nil {
			e := s.Enricher.Enrich(ctx, text)
			cached = &e
		}
		return *cached
	}

	for attempt := 1; ; attempt++ {
		note, reanalysed, err := s.update(ctx, id, upd, enrich)
		if errors.Is(err, store.ErrConflict) && attempt < maxUpdateAttempts {
			s.Logger.Warn("Note changed during update, retrying",
				zap.String("note_id", id), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return model.Note{}, err
		}
		s.Logger.Info("Note updated", zap.String("note_id", note.ID), zap.Bool("reanalysed", reanalysed))
		return note, nil
	}
}

// update performs one read-modify-write.
func (s *Notes) update(ctx context.Context, id string, upd NoteUpdate, enrich func(string) model.Enrichment) (model.Note, bool, error) {
	note, err := s.Store.GetNote(ctx, id)
	if err != nil {
		return model.Note{}, false, fmt.Errorf("note %s: %w", id, err)
	}
	expect := store.RevisionOf(note)

	if upd.ClientID != nil {
		if *upd.ClientID == "" {
			return model.Note{}, false, ErrClientRequired
		}
		if _, err := s.Store.GetClient(ctx, *upd.ClientID); err != nil {
			return model.Note{}, false, fmt.Errorf("client %s: %w", *upd.ClientID, err)
		}
		note.ClientID = *upd.ClientID
	}

	reanalysed := false
	if upd.Text != nil {
		text := *upd.Text
		if strings.TrimSpace(text) == "" {
			return model.Note{}, false, ErrTextRequired
		}
		if note.NeedsAnalysis(text) {
			note.ApplyEnrichment(enrich(text), s.Now())
			reanalysed = true
		}
		note.Text = text
	}

	if err := s.Store.UpdateNote(ctx, note, expect); err != nil {
		return model.Note{}, false, fmt.Errorf("failed to save note: %w", err)
	}
	return note, reanalysed, nil
}

func (s *Notes) Get(ctx context.Context, id string) (model.Note, error) {
	return s.Store.GetNote(ctx, id)
}

// ListForClient returns the client's notes newest first.
func (s *Notes) ListForClient(ctx context.Context, clientID string) ([]model.Note, error) {
	return s.Store.ListNotes(ctx, clientID)
}

func (s *Notes) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteNote(ctx, id)
}
