package storage

import (
	"errors"
)

var (
	// Note: there are other not found errors: badger.ErrKeyNotFound and pebble.ErrNotFound.
	// Backends in storage/badger and storage/pebble translate them, so callers only
	// ever see storage.ErrNotFound.
	ErrNotFound = errors.New("key not found")

	ErrAlreadyExists = errors.New("key already exists")

	// ErrClosed is returned when using a receipt log or transaction that was closed,
	// committed or discarded.
	ErrClosed = errors.New("storage closed")
)
