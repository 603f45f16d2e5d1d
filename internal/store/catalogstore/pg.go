package catalogstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"linkscout/internal/catalog"
)

// PostgresStore reads the catalog from a `catalog_items` table:
//
//	name TEXT PRIMARY KEY,
//	download_pattern TEXT NOT NULL,
//	os_compatibility JSONB NOT NULL  -- {"windows": "", "macos": "https://..."}
//
// Writes go through an external admin tool; this store is read-only.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) FetchAll(ctx context.Context) ([]catalog.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, download_pattern, os_compatibility FROM catalog_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query catalog_items: %w", err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		var osRaw []byte
		if err := rows.Scan(&it.Name, &it.DownloadPattern, &osRaw); err != nil {
			return nil, err
		}
		if err := decodeOSCompat(osRaw, &it); err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
