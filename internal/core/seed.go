package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/carelens/internal/store"
)

// ApplySeed creates the seed's clients and notes. Clients that already exist
// are skipped along with their notes, so re-running against a persistent
// store adds nothing. It returns the number of clients created.
func ApplySeed(ctx context.Context, clients *Clients, notes *Notes, seed store.Seed) (int, error) {
	created := 0
	for _, sc := range seed.Clients {
		_, err := clients.Get(ctx, sc.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, err
		}

		c, err := clients.Create(ctx, sc.Client)
		if err != nil {
			return created, fmt.Errorf("seed client %s: %w", sc.ID, err)
		}
		for _, sn := range sc.Notes {
			if _, err := notes.Create(ctx, NewNote{ClientID: c.ID, AuthorID: sn.Author, Text: sn.Text}); err != nil {
				return created, fmt.Errorf("seed note for %s: %w", sc.ID, err)
			}
		}
		created++
	}
	return created, nil
}
