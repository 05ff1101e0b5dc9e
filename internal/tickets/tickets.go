// Package tickets stores requirement texts waiting to be converted.
package tickets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get for an unknown key.
var ErrNotFound = errors.New("ticket not found")

// Ticket is one requirement as it arrived, e.g. copied from an issue tracker.
type Ticket struct {
	Key         string
	Title       string
	Description string // Gherkin text
	Source      string // file the description was read from, if any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store keeps tickets in the database opened by db.Open.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Put inserts t or replaces the ticket with the same key.
func (s *Store) Put(ctx context.Context, t Ticket) error {
	t.Key = strings.TrimSpace(t.Key)
	if t.Key == "" {
		return errors.New("ticket key is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("ticket %s: description is empty", t.Key)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tickets (key, title, description, source)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			source = excluded.source,
			updated_at = datetime('now')`,
		t.Key, t.Title, t.Description, t.Source)
	if err != nil {
		return fmt.Errorf("saving ticket %s: %w", t.Key, err)
	}
	return nil
}

const selectTicket = `
	SELECT key, title, description, source,
		CAST(strftime('%s', created_at) AS INTEGER),
		CAST(strftime('%s', updated_at) AS INTEGER)
	FROM tickets`

// Get returns the ticket stored under key.
func (s *Store) Get(ctx context.Context, key string) (*Ticket, error) {
	row := s.db.QueryRowContext(ctx, selectTicket+` WHERE key = ?`, key)
	t, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("loading ticket %s: %w", key, err)
	}
	return t, nil
}

// List returns all tickets ordered by key.
func (s *Store) List(ctx context.Context) ([]Ticket, error) {
	rows, err := s.db.QueryContext(ctx, selectTicket+` ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Delete removes the ticket stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tickets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting ticket %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*Ticket, error) {
	var t Ticket
	var created, updated int64
	if err := row.Scan(&t.Key, &t.Title, &t.Description, &t.Source, &created, &updated); err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(created, 0).UTC()
	t.UpdatedAt = time.Unix(updated, 0).UTC()
	return &t, nil
}
