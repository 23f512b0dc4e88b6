package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// SiteConfigStore implements ports.ConfigStore on an embedded SQLite file.
type SiteConfigStore struct {
	db *sql.DB
}

var _ ports.ConfigStore = (*SiteConfigStore)(nil)

// New opens the database file at dataSourceName and ensures the schema exists.
func New(ctx context.Context, dataSourceName string) (*SiteConfigStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	store := &SiteConfigStore{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SiteConfigStore) Close() error { return s.db.Close() }

func (s *SiteConfigStore) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS site_config (
	site_key   TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Get returns the document stored for siteKey.
func (s *SiteConfigStore) Get(ctx context.Context, siteKey string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM site_config WHERE site_key = ?`, siteKey).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSiteConfigNotFound
		}
		return nil, fmt.Errorf("get site config: %w", err)
	}
	return []byte(doc), nil
}

// Put inserts or replaces the document for siteKey. It is used to seed the
// file; the router itself only reads.
func (s *SiteConfigStore) Put(ctx context.Context, siteKey string, document []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO site_config (site_key, document, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(site_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		siteKey, string(document))
	if err != nil {
		return fmt.Errorf("put site config: %w", err)
	}
	return nil
}
