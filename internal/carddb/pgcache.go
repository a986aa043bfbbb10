package carddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createCardCacheTable = `
CREATE TABLE IF NOT EXISTS card_cache (
	name       TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertCard = `
INSERT INTO card_cache (name, data) VALUES ($1, $2::jsonb)
ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, fetched_at = now()`

// PGCache stores raw card JSON in PostgreSQL so several machines can share
// one download of the card data.
type PGCache struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// ConnectPGCache opens a connection pool for url and makes sure the cache
// table exists.
func ConnectPGCache(ctx context.Context, url string, logger *zap.Logger) (*PGCache, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to card cache database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping card cache database: %w", err)
	}
	cache, err := NewPGCache(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return cache, nil
}

// NewPGCache uses an existing pool and makes sure the cache table exists.
func NewPGCache(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*PGCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := pool.Exec(ctx, createCardCacheTable); err != nil {
		return nil, fmt.Errorf("create card_cache table: %w", err)
	}
	stats := pool.Stat()
	logger.Info("card cache database ready",
		zap.Int32("total_conns", stats.TotalConns()),
		zap.Int32("idle_conns", stats.IdleConns()),
	)
	return &PGCache{pool: pool, logger: logger}, nil
}

func (c *PGCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var data string
	err := c.pool.QueryRow(ctx, `SELECT data::text FROM card_cache WHERE name = $1`, cacheKey(name)).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query card_cache: %w", err)
	}
	return []byte(data), true, nil
}

func (c *PGCache) Put(ctx context.Context, name string, data []byte) error {
	_, err := c.pool.Exec(ctx, upsertCard, cacheKey(name), string(data))
	if err != nil {
		return fmt.Errorf("store card %q: %w", name, err)
	}
	return nil
}

// PutBatch stores many cards in one transaction.
func (c *PGCache) PutBatch(ctx context.Context, cards map[string][]byte) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for name, data := range cards {
		batch.Queue(upsertCard, cacheKey(name), string(data))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("store cards: %w", err)
	}
	return tx.Commit(ctx)
}

// Count returns the number of cached cards.
func (c *PGCache) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM card_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count card_cache: %w", err)
	}
	return n, nil
}

// Close releases the connection pool, including one passed to NewPGCache.
func (c *PGCache) Close() {
	c.pool.Close()
}
