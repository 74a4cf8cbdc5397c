package core

import (
	"context"
	"testing"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClient(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "Ada", "Lovelace")

	assert.Equal(t, "client-1", c.ID)
	assert.Equal(t, model.Active, c.CareStatus)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Equal(t, 80, c.Age(fixedNow))
}

func TestCreateClientValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.clients.Create(ctx, model.Client{LastName: "Lovelace", Gender: model.Female})
	assert.ErrorIs(t, err, model.ErrNameRequired)

	_, err = f.clients.Create(ctx, model.Client{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Gender:      model.Female,
		DateOfBirth: fixedNow.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, model.ErrBirthInFuture)

	clients, err := f.clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestUpdateClientKeepsCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ada", "Lovelace")

	later := fixedNow.Add(48 * time.Hour)
	f.clients.Now = func() time.Time { return later }

	c.CareStatus = model.Inactive
	c.CreatedAt = time.Time{}
	updated, err := f.clients.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	got, err := f.clients.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Inactive, got.CareStatus)

	c.ID = "missing"
	_, err = f.clients.Update(ctx, c)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteClientCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ada", "Lovelace")

	note, err := f.notes.Create(ctx, NewNote{ClientID: c.ID, Text: "Slept well."})
	require.NoError(t, err)

	require.NoError(t, f.clients.Delete(ctx, c.ID))
	_, err = f.notes.Get(ctx, note.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
