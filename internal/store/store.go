// Package store persists clients and their care notes.
package store

import (
	"context"
	"errors"

	"github.com/agenthands/carelens/internal/core/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrConflict  = errors.New("modified concurrently")
)

// Revision is the editable state of a note. Analysis fields follow from
// Text, so ClientID and Text identify what a writer last read.
type Revision struct {
	ClientID string
	Text     string
}

func RevisionOf(n model.Note) Revision {
	return Revision{ClientID: n.ClientID, Text: n.Text}
}

// Store is implemented by every backend. Reads return copies; mutating a
// returned record never changes stored state. UpdateNote replaces the whole
// record in one write so readers never see partially applied analysis.
// It fails with ErrConflict when the stored note no longer matches expect.
type Store interface {
	CreateClient(ctx context.Context, c model.Client) error
	GetClient(ctx context.Context, id string) (model.Client, error)
	// ListClients orders by last name, then first name.
	ListClients(ctx context.Context) ([]model.Client, error)
	UpdateClient(ctx context.Context, c model.Client) error
	// DeleteClient removes the client and all of its notes.
	DeleteClient(ctx context.Context, id string) error

	// CreateNote fails with ErrNotFound when the owning client is missing.
	CreateNote(ctx context.Context, n model.Note) error
	GetNote(ctx context.Context, id string) (model.Note, error)
	UpdateNote(ctx context.Context, n model.Note, expect Revision) error
	DeleteNote(ctx context.Context, id string) error
	// ListNotes returns a client's notes newest first.
	ListNotes(ctx context.Context, clientID string) ([]model.Note, error)

	Close() error
}

// missedUpdate explains an UpdateNote that matched nothing: the note is
// gone, it changed since expect was read, or the target client is missing.
func missedUpdate(ctx context.Context, s Store, id string, expect Revision) error {
	current, err := s.GetNote(ctx, id)
	if err != nil {
		return err
	}
	if RevisionOf(current) != expect {
		return ErrConflict
	}
	return ErrNotFound
}
