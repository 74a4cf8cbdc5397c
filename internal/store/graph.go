package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/driver"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphStore keeps clients and notes in Memgraph (or Neo4j) as
// (:Client)-[:HAS_NOTE]->(:Note).
type GraphStore struct {
	Driver driver.GraphDriver
}

func NewGraphStore(d driver.GraphDriver) *GraphStore {
	return &GraphStore{Driver: d}
}

func (s *GraphStore) Close() error {
	return s.Driver.Close(context.Background())
}

func clientProps(c model.Client) map[string]interface{} {
	return map[string]interface{}{
		"id":                       c.ID,
		"first_name":               c.FirstName,
		"last_name":                c.LastName,
		"date_of_birth":            formatDate(c.DateOfBirth),
		"gender":                   string(c.Gender),
		"address":                  c.Address,
		"contact_number":           c.ContactNumber,
		"care_notes":               c.CareNotes,
		"emergency_contact_name":   c.EmergencyContactName,
		"emergency_contact_number": c.EmergencyContactNumber,
		"care_status":              string(c.CareStatus),
		"assigned_caregiver":       c.AssignedCaregiver,
		"created_at":               formatTime(c.CreatedAt),
		"updated_at":               formatTime(c.UpdatedAt),
	}
}

func noteProps(n model.Note) (map[string]interface{}, error) {
	tags, err := encodeTags(n.EmotionTags)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":            n.ID,
		"client_id":     n.ClientID,
		"author_id":     n.AuthorID,
		"created_at":    formatTime(n.CreatedAt),
		"note_text":     n.Text,
		"sentiment":     string(n.Sentiment),
		"emotion_tags":  tags,
		"safeguarding":  n.SafeguardingNarrative,
		"analyzed_hash": n.AnalyzedHash,
		"analyzed_at":   formatTime(n.AnalyzedAt),
	}, nil
}

func str(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)
	return s
}

func recordProps(rec *neo4j.Record, key string) (map[string]interface{}, error) {
	v, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("record has no %q column", key)
	}
	props, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("column %q is %T, not a map", key, v)
	}
	return props, nil
}

func decodeClient(props map[string]interface{}) (model.Client, error) {
	c := model.Client{
		ID:                     str(props, "id"),
		FirstName:              str(props, "first_name"),
		LastName:               str(props, "last_name"),
		Gender:                 model.Gender(str(props, "gender")),
		Address:                str(props, "address"),
		ContactNumber:          str(props, "contact_number"),
		CareNotes:              str(props, "care_notes"),
		EmergencyContactName:   str(props, "emergency_contact_name"),
		EmergencyContactNumber: str(props, "emergency_contact_number"),
		CareStatus:             model.CareStatus(str(props, "care_status")),
		AssignedCaregiver:      str(props, "assigned_caregiver"),
	}

	var err error
	if c.DateOfBirth, err = parseDate(str(props, "date_of_birth")); err != nil {
		return model.Client{}, err
	}
	if c.CreatedAt, err = parseTime(str(props, "created_at")); err != nil {
		return model.Client{}, err
	}
	if c.UpdatedAt, err = parseTime(str(props, "updated_at")); err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func decodeNote(props map[string]interface{}) (model.Note, error) {
	n := model.Note{
		ID:                    str(props, "id"),
		ClientID:              str(props, "client_id"),
		AuthorID:              str(props, "author_id"),
		Text:                  str(props, "note_text"),
		Sentiment:             model.Sentiment(str(props, "sentiment")),
		SafeguardingNarrative: str(props, "safeguarding"),
		AnalyzedHash:          str(props, "analyzed_hash"),
	}

	var err error
	if n.EmotionTags, err = decodeTags(str(props, "emotion_tags")); err != nil {
		return model.Note{}, err
	}
	if n.CreatedAt, err = parseTime(str(props, "created_at")); err != nil {
		return model.Note{}, err
	}
	if n.AnalyzedAt, err = parseTime(str(props, "analyzed_at")); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// exec runs a write query that returns one row per matched entity and maps
// an empty result to ErrNotFound.
func (s *GraphStore) exec(ctx context.Context, query string, params map[string]interface{}) error {
	res, err := s.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GraphStore) CreateClient(ctx context.Context, c model.Client) error {
	switch _, err := s.GetClient(ctx, c.ID); {
	case err == nil:
		return ErrDuplicate
	case !errors.Is(err, ErrNotFound):
		return err
	}
	_, err := s.Driver.ExecuteQuery(ctx, driver.CreateClientQuery, map[string]interface{}{
		"id":    c.ID,
		"props": clientProps(c),
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *GraphStore) GetClient(ctx context.Context, id string) (model.Client, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetClientQuery, map[string]interface{}{"id": id})
	if err != nil {
		return model.Client{}, fmt.Errorf("get client: %w", err)
	}
	if len(res.Records) == 0 {
		return model.Client{}, ErrNotFound
	}
	props, err := recordProps(res.Records[0], "client")
	if err != nil {
		return model.Client{}, err
	}
	return decodeClient(props)
}

func (s *GraphStore) ListClients(ctx context.Context) ([]model.Client, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ListClientsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	out := make([]model.Client, 0, len(res.Records))
	for _, rec := range res.Records {
		props, err := recordProps(rec, "client")
		if err != nil {
			return nil, err
		}
		c, err := decodeClient(props)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sortClients(out)
	return out, nil
}

func (s *GraphStore) UpdateClient(ctx context.Context, c model.Client) error {
	return s.exec(ctx, driver.UpdateClientQuery, map[string]interface{}{
		"id":    c.ID,
		"props": clientProps(c),
	})
}

func (s *GraphStore) DeleteClient(ctx context.Context, id string) error {
	return s.exec(ctx, driver.DeleteClientQuery, map[string]interface{}{"id": id})
}

func (s *GraphStore) CreateNote(ctx context.Context, n model.Note) error {
	switch _, err := s.GetNote(ctx, n.ID); {
	case err == nil:
		return ErrDuplicate
	case !errors.Is(err, ErrNotFound):
		return err
	}
	props, err := noteProps(n)
	if err != nil {
		return err
	}
	return s.exec(ctx, driver.CreateNoteQuery, map[string]interface{}{
		"client_id": n.ClientID,
		"props":     props,
	})
}

func (s *GraphStore) GetNote(ctx context.Context, id string) (model.Note, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetNoteQuery, map[string]interface{}{"id": id})
	if err != nil {
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}
	if len(res.Records) == 0 {
		return model.Note{}, ErrNotFound
	}
	props, err := recordProps(res.Records[0], "note")
	if err != nil {
		return model.Note{}, err
	}
	return decodeNote(props)
}

// UpdateNote replaces all note properties with one SET.
func (s *GraphStore) UpdateNote(ctx context.Context, n model.Note, expect Revision) error {
	props, err := noteProps(n)
	if err != nil {
		return err
	}
	err = s.exec(ctx, driver.UpdateNoteQuery, map[string]interface{}{
		"id":            n.ID,
		"client_id":     n.ClientID,
		"props":         props,
		"expect_client": expect.ClientID,
		"expect_text":   expect.Text,
	})
	if errors.Is(err, ErrNotFound) {
		return missedUpdate(ctx, s, n.ID, expect)
	}
	return err
}

func (s *GraphStore) DeleteNote(ctx context.Context, id string) error {
	return s.exec(ctx, driver.DeleteNoteQuery, map[string]interface{}{"id": id})
}

func (s *GraphStore) ListNotes(ctx context.Context, clientID string) ([]model.Note, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	res, err := s.Driver.ExecuteQuery(ctx, driver.ListNotesQuery, map[string]interface{}{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]model.Note, 0, len(res.Records))
	for _, rec := range res.Records {
		props, err := recordProps(rec, "note")
		if err != nil {
			return nil, err
		}
		n, err := decodeNote(props)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	sortNotes(out)
	return out, nil
}
