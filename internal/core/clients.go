package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/store"
	"github.com/google/uuid"
)

// Clients validates and stamps client records on their way to the store.
type Clients struct {
	Store store.Store
	NewID func() string
	Now   func() time.Time
}

func NewClients(st store.Store) *Clients {
	return &Clients{
		Store: st,
		NewID: uuid.NewString,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Clients) Create(ctx context.Context, c model.Client) (model.Client, error) {
	now := s.Now()
	if err := c.Validate(now); err != nil {
		return model.Client{}, err
	}
	if c.ID == "" {
		c.ID = s.NewID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.Store.CreateClient(ctx, c); err != nil {
		return model.Client{}, fmt.Errorf("failed to save client: %w", err)
	}
	return c, nil
}

func (s *Clients) Get(ctx context.Context, id string) (model.Client, error) {
	return s.Store.GetClient(ctx, id)
}

func (s *Clients) List(ctx context.Context) ([]model.Client, error) {
	return s.Store.ListClients(ctx)
}

// Update replaces the stored client. ID and creation time are kept from the
// stored record.
func (s *Clients) Update(ctx context.Context, c model.Client) (model.Client, error) {
	existing, err := s.Store.GetClient(ctx, c.ID)
	if err != nil {
		return model.Client{}, err
	}

	now := s.Now()
	if err := c.Validate(now); err != nil {
		return model.Client{}, err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = now

	if err := s.Store.UpdateClient(ctx, c); err != nil {
		return model.Client{}, fmt.Errorf("failed to save client: %w", err)
	}
	return c, nil
}

// Delete removes the client together with its notes.
func (s *Clients) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteClient(ctx, id)
}
