package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/carelens/internal/core/model"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		contact_number TEXT NOT NULL DEFAULT '',
		care_notes TEXT NOT NULL DEFAULT '',
		emergency_contact_name TEXT NOT NULL DEFAULT '',
		emergency_contact_number TEXT NOT NULL DEFAULT '',
		care_status TEXT NOT NULL DEFAULT 'Active',
		assigned_caregiver TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		author_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		note_text TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		emotion_tags TEXT NOT NULL DEFAULT '{}',
		safeguarding TEXT NOT NULL,
		analyzed_hash TEXT NOT NULL DEFAULT '',
		analyzed_at TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_notes_client ON notes(client_id, created_at);
`

const clientColumns = `id, first_name, last_name, date_of_birth, gender, address, contact_number,
	care_notes, emergency_contact_name, emergency_contact_number, care_status,
	assigned_caregiver, created_at, updated_at`

const noteColumns = `id, client_id, author_id, created_at, note_text, sentiment, emotion_tags,
	safeguarding, analyzed_hash, analyzed_at`

// SQLStore persists to SQLite through the pure-Go modernc driver.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (creating if needed) the database at path. ":memory:"
// gives a private in-memory database.
func NewSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: SQLite serialises writers anyway, and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (model.Client, error) {
	var c model.Client
	var dob, createdAt, updatedAt string
	var gender, status string
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &dob, &gender, &c.Address,
		&c.ContactNumber, &c.CareNotes, &c.EmergencyContactName, &c.EmergencyContactNumber,
		&status, &c.AssignedCaregiver, &createdAt, &updatedAt); err != nil {
		return model.Client{}, err
	}
	c.Gender = model.Gender(gender)
	c.CareStatus = model.CareStatus(status)

	var err error
	if c.DateOfBirth, err = parseDate(dob); err != nil {
		return model.Client{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Client{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func scanNote(row scanner) (model.Note, error) {
	var n model.Note
	var createdAt, analyzedAt, sentiment, tags string
	if err := row.Scan(&n.ID, &n.ClientID, &n.AuthorID, &createdAt, &n.Text, &sentiment,
		&tags, &n.SafeguardingNarrative, &n.AnalyzedHash, &analyzedAt); err != nil {
		return model.Note{}, err
	}
	n.Sentiment = model.Sentiment(sentiment)

	var err error
	if n.EmotionTags, err = decodeTags(tags); err != nil {
		return model.Note{}, err
	}
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Note{}, err
	}
	if n.AnalyzedAt, err = parseTime(analyzedAt); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

func clientArgs(c model.Client) []any {
	return []any{c.ID, c.FirstName, c.LastName, formatDate(c.DateOfBirth), string(c.Gender),
		c.Address, c.ContactNumber, c.CareNotes, c.EmergencyContactName, c.EmergencyContactNumber,
		string(c.CareStatus), c.AssignedCaregiver, formatTime(c.CreatedAt), formatTime(c.UpdatedAt)}
}

func noteArgs(n model.Note) ([]any, error) {
	tags, err := encodeTags(n.EmotionTags)
	if err != nil {
		return nil, err
	}
	return []any{n.ID, n.ClientID, n.AuthorID, formatTime(n.CreatedAt), n.Text, string(n.Sentiment),
		tags, n.SafeguardingNarrative, n.AnalyzedHash, formatTime(n.AnalyzedAt)}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CreateClient(ctx context.Context, c model.Client) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		clientArgs(c)...)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *SQLStore) GetClient(ctx context.Context, id string) (model.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, ErrNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("scan client: %w", err)
	}
	return c, nil
}

func (s *SQLStore) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	out := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateClient(ctx context.Context, c model.Client) error {
	args := clientArgs(c)
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET first_name = ?, last_name = ?, date_of_birth = ?, gender = ?,
			address = ?, contact_number = ?, care_notes = ?, emergency_contact_name = ?,
			emergency_contact_number = ?, care_status = ?, assigned_caregiver = ?,
			created_at = ?, updated_at = ?
		WHERE id = ?`, append(args[1:], args[0])...)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return affected(res)
}

func (s *SQLStore) DeleteClient(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE client_id = ?`, id); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if err := affected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) CreateNote(ctx context.Context, n model.Note) error {
	args, err := noteArgs(n)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM clients WHERE id = ?)`,
		append(args, n.ClientID)...)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return affected(res)
}

func (s *SQLStore) GetNote(ctx context.Context, id string) (model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, ErrNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("scan note: %w", err)
	}
	return n, nil
}

// UpdateNote writes every column in a single statement, guarded by the
// revision the caller read.
func (s *SQLStore) UpdateNote(ctx context.Context, n model.Note, expect Revision) error {
	args, err := noteArgs(n)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE notes SET client_id = ?, author_id = ?, created_at = ?, note_text = ?,
			sentiment = ?, emotion_tags = ?, safeguarding = ?, analyzed_hash = ?, analyzed_at = ?
		WHERE id = ? AND client_id = ? AND note_text = ?
			AND EXISTS (SELECT 1 FROM clients WHERE id = ?)`,
		append(args[1:], args[0], expect.ClientID, expect.Text, n.ClientID)...)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if err = affected(res); errors.Is(err, ErrNotFound) {
		return missedUpdate(ctx, s, n.ID, expect)
	}
	return err
}

func (s *SQLStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return affected(res)
}

func (s *SQLStore) ListNotes(ctx context.Context, clientID string) ([]model.Note, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE client_id = ? ORDER BY created_at DESC, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	out := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
