package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/dbx"
)

// escapeLike escapes the LIKE metacharacters in s so it matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SQLiteStore implements Store over a single kv table using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the raw value for key, or (nil, nil) when the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `select value from kv where key=?`
	row := s.db.QueryRowContext(ctx, query, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query := `insert into kv (key, value, updated_at) values (?, ?, ?)
			on conflict(key) do update set value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// SetMany upserts several keys. When the store is backed by *sql.DB the
// writes run in one transaction, so a partial login state can never be
// persisted; a transactional handle just writes sequentially.
func (s *SQLiteStore) SetMany(ctx context.Context, values map[string][]byte) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		for key, value := range values {
			if err := s.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := NewSQLiteStore(tx)
		for key, value := range values {
			if err := st.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	query := `delete from kv where key=?`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys matching the given prefix, ordered
// lexicographically. The chat watcher uses this to rescan message buckets.
// The prefix is matched literally: bucket prefixes contain underscores,
// which LIKE would otherwise treat as single-character wildcards.
func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `select key from kv where key like ? escape '\' order by key`
	rows, err := s.db.QueryContext(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		result = append(result, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
