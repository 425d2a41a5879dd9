package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS workflows (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    canvas          JSONB NOT NULL DEFAULT '{}',
    graph           JSONB NOT NULL DEFAULT '{}',
    canvas_to_graph JSONB NOT NULL DEFAULT '{}',
    graph_to_canvas JSONB NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_workflows_name ON workflows(name);
`

// CreateSchema creates the workflows table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the workflows table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS workflows CASCADE;`)
	return err
}
