package store

import "context"

const migrationSQL = `
CREATE TABLE IF NOT EXISTS intents (
    id BIGSERIAL PRIMARY KEY,
    address TEXT NOT NULL,
    pool_id TEXT NOT NULL,
    platform TEXT NOT NULL DEFAULT '',
    amount_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
    goal TEXT NOT NULL DEFAULT 'yield',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_intents_address_created
    ON intents (address, created_at DESC);
`

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, migrationSQL)
	return err
}
