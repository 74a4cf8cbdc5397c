package store

import (
	"context"
	"testing"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func testClient(id, first, last string) model.Client {
	return model.Client{
		ID:          id,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      model.Female,
		CareStatus:  model.Active,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
}

func testNote(id, clientID string, offset time.Duration) model.Note {
	return model.Note{
		ID:                    id,
		ClientID:              clientID,
		AuthorID:              "nurse-1",
		CreatedAt:             baseTime.Add(offset),
		Text:                  "Ate well at lunch.",
		Sentiment:             model.Positive,
		EmotionTags:           model.EmotionTags{"contentment": 0.7},
		SafeguardingNarrative: "No risks identified.",
		AnalyzedHash:          model.HashText("Ate well at lunch."),
		AnalyzedAt:            baseTime.Add(offset),
	}
}

// runStoreSuite checks the behaviour every backend shares.
func runStoreSuite(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("client lifecycle", func(t *testing.T) {
		s := open(t)

		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		assert.ErrorIs(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")), ErrDuplicate)

		got, err := s.GetClient(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "Lovelace", got.LastName)
		assert.True(t, got.DateOfBirth.Equal(time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, got.CreatedAt.Equal(baseTime))

		got.CareStatus = model.UnderReview
		require.NoError(t, s.UpdateClient(ctx, got))
		got, err = s.GetClient(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, model.UnderReview, got.CareStatus)

		assert.ErrorIs(t, s.UpdateClient(ctx, testClient("missing", "X", "Y")), ErrNotFound)
		_, err = s.GetClient(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("clients ordered by name", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Zoe", "Baker")))
		require.NoError(t, s.CreateClient(ctx, testClient("c2", "Amy", "Carter")))
		require.NoError(t, s.CreateClient(ctx, testClient("c3", "Amy", "Baker")))

		clients, err := s.ListClients(ctx)
		require.NoError(t, err)
		ids := make([]string, len(clients))
		for i, c := range clients {
			ids[i] = c.ID
		}
		assert.Equal(t, []string{"c3", "c1", "c2"}, ids)
	})

	t.Run("notes newest first", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		require.NoError(t, s.CreateNote(ctx, testNote("n1", "c1", 0)))
		require.NoError(t, s.CreateNote(ctx, testNote("n2", "c1", 2*time.Hour)))
		require.NoError(t, s.CreateNote(ctx, testNote("n3", "c1", time.Hour)))

		notes, err := s.ListNotes(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "n2", notes[0].ID)
		assert.Equal(t, "n3", notes[1].ID)
		assert.Equal(t, "n1", notes[2].ID)
		assert.Equal(t, model.EmotionTags{"contentment": 0.7}, notes[0].EmotionTags)
	})

	t.Run("empty note list", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))

		notes, err := s.ListNotes(ctx, "c1")
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)

		_, err = s.ListNotes(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("note requires client", func(t *testing.T) {
		s := open(t)
		assert.ErrorIs(t, s.CreateNote(ctx, testNote("n1", "missing", 0)), ErrNotFound)
	})

	t.Run("update note replaces record", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		require.NoError(t, s.CreateClient(ctx, testClient("c2", "Bo", "Baker")))
		require.NoError(t, s.CreateNote(ctx, testNote("n1", "c1", 0)))

		n, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		expect := RevisionOf(n)
		n.ClientID = "c2"
		n.Text = "Refused breakfast."
		n.Sentiment = model.Negative
		n.EmotionTags = model.EmotionTags{"frustration": 0.5}
		n.SafeguardingNarrative = "Monitor food intake."
		require.NoError(t, s.UpdateNote(ctx, n, expect))

		got, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "c2", got.ClientID)
		assert.Equal(t, model.Negative, got.Sentiment)
		assert.Equal(t, model.EmotionTags{"frustration": 0.5}, got.EmotionTags)
		assert.Equal(t, "Monitor food intake.", got.SafeguardingNarrative)

		moved, err := s.ListNotes(ctx, "c1")
		require.NoError(t, err)
		assert.Empty(t, moved)

		missing := testNote("missing", "c1", 0)
		assert.ErrorIs(t, s.UpdateNote(ctx, missing, RevisionOf(missing)), ErrNotFound)
	})

	t.Run("update note rejects stale revision", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		require.NoError(t, s.CreateClient(ctx, testClient("c2", "Bo", "Baker")))
		require.NoError(t, s.CreateNote(ctx, testNote("n1", "c1", 0)))

		first, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		second := first.Clone()

		first.ClientID = "c2"
		require.NoError(t, s.UpdateNote(ctx, first, RevisionOf(second)))

		second.Text = "Refused breakfast."
		assert.ErrorIs(t, s.UpdateNote(ctx, second, RevisionOf(second)), ErrConflict)

		got, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "c2", got.ClientID)
		assert.Equal(t, first.Text, got.Text)

		// A missing target client is still reported as not found.
		got.ClientID = "missing"
		assert.ErrorIs(t, s.UpdateNote(ctx, got, RevisionOf(first)), ErrNotFound)
	})

	t.Run("returned notes are copies", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		require.NoError(t, s.CreateNote(ctx, testNote("n1", "c1", 0)))

		n, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		n.EmotionTags["contentment"] = 0

		again, err := s.GetNote(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, 0.7, again.EmotionTags["contentment"])
	})

	t.Run("delete", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
		require.NoError(t, s.CreateNote(ctx, testNote("n1", "c1", 0)))
		require.NoError(t, s.CreateNote(ctx, testNote("n2", "c1", time.Minute)))

		require.NoError(t, s.DeleteNote(ctx, "n1"))
		assert.ErrorIs(t, s.DeleteNote(ctx, "n1"), ErrNotFound)

		require.NoError(t, s.DeleteClient(ctx, "c1"))
		_, err := s.GetNote(ctx, "n2")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeleteClient(ctx, "c1"), ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewSQLStore(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestSQLStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/carelens.db"

	s, err := NewSQLStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.CreateClient(ctx, testClient("c1", "Ada", "Lovelace")))
	require.NoError(t, s.Close())

	s, err = NewSQLStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed("testdata/seed.yaml")
	require.NoError(t, err)
	require.Len(t, seed.Clients, 2)

	ada := seed.Clients[0]
	assert.Equal(t, "client-ada", ada.ID)
	assert.Equal(t, model.Female, ada.Gender)
	assert.Equal(t, 1948, ada.DateOfBirth.Year())
	require.Len(t, ada.Notes, 2)
	assert.Equal(t, "nurse-2", ada.Notes[1].Author)

	assert.Equal(t, model.UnderReview, seed.Clients[1].CareStatus)
	assert.Empty(t, seed.Clients[1].Notes)

	_, err = LoadSeed("testdata/missing.yaml")
	assert.Error(t, err)
}
