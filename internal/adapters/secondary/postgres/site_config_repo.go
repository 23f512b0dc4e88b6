package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-resolution-router/internal/config"
	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// Schema is the table read by the site configuration repository.
const Schema = `
CREATE TABLE IF NOT EXISTS site_config (
	site_key   TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type siteConfigRepo struct {
	pool *pgxpool.Pool
}

// NewSiteConfigRepository creates a new site configuration repository
func NewSiteConfigRepository(pool *pgxpool.Pool) ports.ConfigStore {
	return &siteConfigRepo{pool: pool}
}

// NewPool creates and verifies a connection pool from cfg.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func (r *siteConfigRepo) Get(ctx context.Context, siteKey string) ([]byte, error) {
	query := `
		SELECT document::text
		FROM site_config
		WHERE site_key = $1
	`
	var doc string
	if err := r.pool.QueryRow(ctx, query, siteKey).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSiteConfigNotFound
		}
		return nil, fmt.Errorf("get site_config by key: %w", err)
	}
	return []byte(doc), nil
}

// Migrate creates the site_config table when it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create site_config table: %w", err)
	}
	return nil
}
