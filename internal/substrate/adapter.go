package substrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Adapter is the capability higher layers use to reach the substrate.
//
// Get reports ok=false for absent keys; absence is not an error.
// KeysWithPrefix returns keys in unspecified order, not guaranteed stable
// across calls. Callers requiring stable display order must sort explicitly.
type Adapter interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	KeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

// StorageError wraps a substrate failure (e.g., disk full, locked database).
// Operations that hit one drop their on-disk effect; in-memory state still
// advances, and the caller logs the error.
type StorageError struct {
	Op  string // "get" | "set" | "keys"
	Key string // key or prefix involved
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("substrate %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if the error is a substrate failure.
// Uses errors.As to handle wrapped errors.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Get returns the value stored under key, or ok=false if the key is absent.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM entries WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// KeysWithPrefix returns all keys beginning with prefix.
// Returns an empty slice (not nil) when nothing matches.
func (d *DB) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT key FROM entries WHERE key LIKE ? ESCAPE '\'`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, &StorageError{Op: "keys", Key: prefix, Err: err}
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &StorageError{Op: "keys", Key: prefix, Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "keys", Key: prefix, Err: err}
	}

	return keys, nil
}

// escapeLike escapes LIKE wildcards in a literal prefix.
// The record key prefix contains none, but the adapter must not assume that.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
