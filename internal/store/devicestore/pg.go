package devicestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore reads saved devices from a `devices` table keyed by
// user session id, with an LRU cache in front so repeated turns in one
// conversation do not re-query.
type PostgresStore struct {
	db    *sql.DB
	cache *lru.Cache[string, []Device]
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
	cache, err := lru.New[string, []Device](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db, cache: cache}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ListForUser(ctx context.Context, sessionID string) ([]Device, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, nil
	}
	if cached, ok := s.cache.Get(sessionID); ok {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, manufacturer, model, COALESCE(serial_number, ''), operating_system
		 FROM devices WHERE session_id = $1 ORDER BY name`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.Name, &d.Manufacturer, &d.Model, &d.SerialNumber, &d.OperatingSystem); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.cache.Add(sessionID, devices)
	return devices, nil
}

// Forget drops one session from the cache, for use after the account
// system reports a device change.
func (s *PostgresStore) Forget(sessionID string) {
	s.cache.Remove(strings.TrimSpace(sessionID))
}
