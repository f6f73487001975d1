package pebble

import (
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble"

	"github.com/ledgerd/recordcache/storage"
)

// reader adapts a pebble reader, either the database or an indexed batch.
type reader struct {
	r pebble.Reader
}

var _ storage.Reader = (*reader)(nil)

func (r reader) Get(key []byte) ([]byte, io.Closer, error) {
	val, closer, err := r.r.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil, storage.ErrNotFound
		}
		return nil, nil, fmt.Errorf("could not load key %x: %w", key, err)
	}
	return val, closer, nil
}

// batchReaderWriter adapts an indexed batch, whose reads observe its own pending writes.
type batchReaderWriter struct {
	reader
	batch *pebble.Batch
}

var _ storage.ReaderWriter = (*batchReaderWriter)(nil)

func newBatchReaderWriter(batch *pebble.Batch) batchReaderWriter {
	return batchReaderWriter{reader: reader{r: batch}, batch: batch}
}

func (rw batchReaderWriter) Set(key, value []byte) error {
	return rw.batch.Set(key, value, nil)
}

func (rw batchReaderWriter) Delete(key []byte) error {
	return rw.batch.Delete(key, nil)
}
