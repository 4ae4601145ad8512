package snapshot

import (
	"context"
	"database/sql"
	"errors"

	"table-reserve/internal/infra"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps snapshots in an embedded database, one row per key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, infra.WrapStorageErr("failed to open sqlite database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, infra.WrapStorageErr("failed to ping sqlite database", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return infra.WrapStorageErr("failed to create snapshot schema", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM snapshots WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, infra.WrapStorageErr("failed to load snapshot", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return infra.WrapStorageErr("failed to save snapshot", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
