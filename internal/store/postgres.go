package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// --- Deposit Intents ---

// Intent records a user's stated intention to deposit into a pool. It is
// an off-chain note only; nothing here touches a wallet or contract.
type Intent struct {
	ID        int64     `json:"id"`
	Address   string    `json:"address"`
	PoolID    string    `json:"poolId"`
	Platform  string    `json:"platform"`
	AmountUSD float64   `json:"amountUsd"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Store) InsertIntent(ctx context.Context, in Intent) (*Intent, error) {
	var out Intent
	err := s.pool.QueryRow(ctx, `
		INSERT INTO intents (address, pool_id, platform, amount_usd, goal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, address, pool_id, platform, amount_usd, goal, created_at`,
		in.Address, in.PoolID, in.Platform, in.AmountUSD, in.Goal).
		Scan(&out.ID, &out.Address, &out.PoolID, &out.Platform, &out.AmountUSD, &out.Goal, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListIntents(ctx context.Context, address string, limit int) ([]Intent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, address, pool_id, platform, amount_usd, goal, created_at
		FROM intents
		WHERE address = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, address, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intents []Intent
	for rows.Next() {
		var in Intent
		if err := rows.Scan(&in.ID, &in.Address, &in.PoolID, &in.Platform, &in.AmountUSD, &in.Goal, &in.CreatedAt); err != nil {
			return nil, err
		}
		intents = append(intents, in)
	}
	return intents, rows.Err()
}

// Pool exposes the underlying connection pool for use by other packages.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}
