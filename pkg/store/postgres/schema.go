package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bleprint_graphs (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    document   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bleprint_graphs_updated ON bleprint_graphs(updated_at DESC);
`

// CreateSchema creates the bleprint_graphs table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the bleprint_graphs table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS bleprint_graphs;`)
	return err
}
