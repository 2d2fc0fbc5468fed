// Package store provides the key-value snapshot stores the list is persisted to.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for key names that cannot be stored.
var ErrInvalidKey = errors.New("invalid key")

// Store is a small key-value store holding whole snapshots.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Kind names a store backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "listkeep.db"

// Open opens a store of the given kind rooted at dir.
func Open(kind string, dir string) (Store, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindFile, "":
		return NewFileStore(dir)
	case KindSQLite:
		return OpenSQLite(joinPath(dir, SQLiteFile))
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (expected file|sqlite|memory)", kind)
	}
}

// ValidateKey checks that key is usable as a file name and a table key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, key, c)
		}
	}
	return nil
}
