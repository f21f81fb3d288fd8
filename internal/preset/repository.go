package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository persists serialized preset documents under a key.
type Repository interface {
	// Load returns the document bytes stored under key, or ErrNoDocument
	// when nothing has been saved yet.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the document bytes under key, replacing any previous
	// value.
	Save(ctx context.Context, key string, data []byte) error
}

// SQLiteRepository stores documents in the documents table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load implements Repository.
func (r *SQLiteRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, key)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", key, err)
	}
	return []byte(data), nil
}

// Save implements Repository. The write is an upsert so the first save
// and every subsequent save take the same path.
func (r *SQLiteRepository) Save(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("saving document %s: %w", key, err)
	}
	return nil
}
