package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/USQVE/bleprint/pkg/store"
)

// Save inserts or replaces a record. An existing row keeps its created_at.
func (s *PGStore) Save(ctx context.Context, rec *store.Record) error {
	if err := store.Prepare(rec, time.Now()); err != nil {
		return err
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO bleprint_graphs (id, name, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
		RETURNING created_at`,
		rec.ID, rec.Name, rec.Document, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: save %s: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *PGStore) Get(ctx context.Context, id string) (*store.Record, error) {
	var rec store.Record
	err := s.db.QueryRow(ctx,
		`SELECT id, name, document, created_at, updated_at FROM bleprint_graphs WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Document, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get %s: %w", id, err)
	}
	return &rec, nil
}

// List returns every record, most recently updated first.
func (s *PGStore) List(ctx context.Context) ([]store.Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, document, created_at, updated_at FROM bleprint_graphs ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: query graphs: %w", err)
	}
	defer rows.Close()

	out := []store.Record{}
	for rows.Next() {
		var rec store.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Document, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan graph: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows graphs: %w", err)
	}
	return out, nil
}

// Delete removes a record.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM bleprint_graphs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

var _ store.Store = (*PGStore)(nil)
