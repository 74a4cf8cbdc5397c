package store

import (
	"context"
	"sync"

	"github.com/agenthands/carelens/internal/core/model"
)

// MemoryStore keeps everything in process. It is the default backend and
// the one used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	clients map[string]model.Client
	notes   map[string]model.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients: make(map[string]model.Client),
		notes:   make(map[string]model.Note),
	}
}

func (s *MemoryStore) CreateClient(_ context.Context, c model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c.ID]; ok {
		return ErrDuplicate
	}
	s.clients[c.ID] = c
	return nil
}

func (s *MemoryStore) GetClient(_ context.Context, id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return model.Client{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) ListClients(_ context.Context) ([]model.Client, error) {
	s.mu.RLock()
	out := make([]model.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sortClients(out)
	return out, nil
}

func (s *MemoryStore) UpdateClient(_ context.Context, c model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c.ID]; !ok {
		return ErrNotFound
	}
	s.clients[c.ID] = c
	return nil
}

func (s *MemoryStore) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	delete(s.clients, id)
	for noteID, n := range s.notes {
		if n.ClientID == id {
			delete(s.notes, noteID)
		}
	}
	return nil
}

func (s *MemoryStore) CreateNote(_ context.Context, n model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[n.ClientID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.notes[n.ID]; ok {
		return ErrDuplicate
	}
	s.notes[n.ID] = n.Clone()
	return nil
}

func (s *MemoryStore) GetNote(_ context.Context, id string) (model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return model.Note{}, ErrNotFound
	}
	return n.Clone(), nil
}

func (s *MemoryStore) UpdateNote(_ context.Context, n model.Note, expect Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.notes[n.ID]
	if !ok {
		return ErrNotFound
	}
	if RevisionOf(current) != expect {
		return ErrConflict
	}
	if _, ok := s.clients[n.ClientID]; !ok {
		return ErrNotFound
	}
	s.notes[n.ID] = n.Clone()
	return nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) ListNotes(_ context.Context, clientID string) ([]model.Note, error) {
	s.mu.RLock()
	if _, ok := s.clients[clientID]; !ok {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	out := make([]model.Note, 0)
	for _, n := range s.notes {
		if n.ClientID == clientID {
			out = append(out, n.Clone())
		}
	}
	s.mu.RUnlock()

	sortNotes(out)
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
