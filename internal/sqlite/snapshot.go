package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/swipecount/internal/repository"
)

// CountersKey is the kv_store key holding the counter collection.
const CountersKey = "counters"

// SnapshotRepository stores one opaque value under a fixed key.
type SnapshotRepository struct {
	db  *DB
	key string
}

// NewSnapshotRepository creates a SnapshotRepository for key. An empty key
// selects CountersKey.
func NewSnapshotRepository(db *DB, key string) *SnapshotRepository {
	if key == "" {
		key = CountersKey
	}
	return &SnapshotRepository{db: db, key: key}
}

// LoadSnapshot returns the stored value or repository.ErrNotFound.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, r.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", r.key, err)
	}
	return []byte(value), nil
}

// SaveSnapshot replaces the stored value. Empty data is rejected with
// repository.ErrInvalidInput.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty snapshot for %q", repository.ErrInvalidInput, r.key)
	}
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", r.key, err)
	}
	return nil
}
