package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/service-desk/helpdesk/internal/config"
)

// PostgresStore is a BlobStore backed by a single key-value table. The
// schema is intentionally a blob table, not a relational ticket model: the
// storage contract is get/set of opaque values.
type PostgresStore struct {
	pool   *pgxpool.Pool
	prefix string
}

const blobSchema = `
    CREATE TABLE IF NOT EXISTS kv_blobs (
        key        TEXT PRIMARY KEY,
        value      BYTEA NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

// NewPostgresStore establishes a connection pool and ensures the blob
// table exists.
func NewPostgresStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*PostgresStore, error) {
	if cfg.Postgres.DSN == "" {
		return nil, errors.New("POSTGRES_DSN not provided")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolCfg.MinConns = cfg.Postgres.MinConns
	}
	if cfg.Postgres.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.Postgres.ConnMaxIdleSec) * time.Second
	}
	if cfg.Postgres.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.Postgres.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, blobSchema); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &PostgresStore{pool: pool, prefix: cfg.KeyPrefix}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_blobs WHERE key=$1`
	var value []byte
	err := p.pool.QueryRow(ctx, query, p.prefix+key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	const query = `
        INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := p.pool.Exec(ctx, query, p.prefix+key, value)
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_blobs WHERE key=$1`
	_, err := p.pool.Exec(ctx, query, p.prefix+key)
	return err
}

// Ping verifies database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.pool.Ping(ctx)
}

// Close releases pool resources.
func (p *PostgresStore) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}
