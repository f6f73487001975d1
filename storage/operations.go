package storage

import "io"

// Reader reads keys from a key-value store. Reads made through a transaction observe
// the transaction's own pending writes.
type Reader interface {
	// Get returns the value stored under key. The value is only valid until the
	// returned closer is closed.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the key does not exist
	Get(key []byte) (value []byte, closer io.Closer, err error)
}

// Writer stages writes to a key-value store.
type Writer interface {
	Set(key, value []byte) error
	// Delete removes the key. Deleting a missing key is a no-op.
	Delete(key []byte) error
}

// ReaderWriter is a transaction scoped view of the store that can read back its own writes.
type ReaderWriter interface {
	Reader
	Writer
}

// NoopCloser is returned by readers whose values need no release.
type NoopCloser struct{}

var _ io.Closer = (*NoopCloser)(nil)

func (NoopCloser) Close() error { return nil }
