package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full database schema. It is idempotent so it can run on
// every startup; a separate migration tool is overkill for a single table.
const schema = `
CREATE TABLE IF NOT EXISTS meetings (
    id          UUID PRIMARY KEY,
    filename    TEXT NOT NULL,
    transcript  TEXT NOT NULL,
    summary     TEXT NOT NULL,
    deadlines   JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_meetings_created_at ON meetings (created_at DESC);
`

// EnsureSchema creates the required tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
