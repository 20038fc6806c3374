// Package store persists named graphs.
//
// A [Store] keeps [Record]s: a graph document plus a name and timestamps.
// Three backends implement it:
//   - [Memory]: process-local, used by tests and by `bleprint serve` when
//     no database is configured
//   - store/mongo: one document per record
//   - store/postgres: one row per record with the graph in a JSONB column
//
// Save has replace semantics: saving a record whose ID already exists
// overwrites it and keeps its CreatedAt.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	bperrors "github.com/USQVE/bleprint/pkg/errors"
	bpio "github.com/USQVE/bleprint/pkg/io"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("store: graph not found")

// Record is a stored graph.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Document  bpio.Document `json:"document" bson:"document"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store is the contract every backend implements.
type Store interface {
	// Save inserts or replaces a record. An empty ID is filled in.
	Save(ctx context.Context, rec *Record) error
	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]Record, error)
	// Delete returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Prepare validates rec and stamps its ID and UpdatedAt. Backends call it
// at the start of Save; CreatedAt is left for the backend to preserve.
func Prepare(rec *Record, now time.Time) error {
	if err := bperrors.ValidateGraphName(rec.Name); err != nil {
		return err
	}
	if _, err := bpio.ToGraph(rec.Document); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UpdatedAt = now.UTC().Truncate(time.Millisecond)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}
	return nil
}
