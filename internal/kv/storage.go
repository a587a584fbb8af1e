// Package kv provides synchronous key-value storage backends.
//
// A Storage is the process-local analogue of a browser's localStorage:
// string keys, opaque values, full overwrite on Set, and no transactions
// spanning keys.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Storage is a synchronous key-value store.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Close releases resources held by the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends returns the names of all available backends.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite}
}

// Open opens the named backend. location is a directory for the file
// backend, a database path for sqlite, and ignored for memory.
func Open(backend, location string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		f, err := OpenFile(location)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendSQLite:
		s, err := OpenSQLite(location)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s)", backend, strings.Join(Backends(), ", "))
	}
}
