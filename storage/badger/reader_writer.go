package badger

import (
	"io"

	"github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"

	"github.com/ledgerd/recordcache/storage"
)

// txnReaderWriter adapts a badger transaction to storage.ReaderWriter. Reads observe
// the transaction's pending writes.
type txnReaderWriter struct {
	txn *badger.Txn
}

var _ storage.ReaderWriter = (*txnReaderWriter)(nil)

func (rw txnReaderWriter) Get(key []byte) ([]byte, io.Closer, error) {
	item, err := rw.txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil, storage.ErrNotFound
		}
		return nil, nil, errors.Wrapf(err, "could not load key %x", key)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not copy value of key %x", key)
	}
	return val, storage.NoopCloser{}, nil
}

func (rw txnReaderWriter) Set(key, value []byte) error {
	return errors.Wrapf(rw.txn.Set(key, value), "could not set key %x", key)
}

func (rw txnReaderWriter) Delete(key []byte) error {
	return errors.Wrapf(rw.txn.Delete(key), "could not delete key %x", key)
}
