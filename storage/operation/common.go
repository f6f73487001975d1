package operation

import (
	"errors"
	"fmt"

	"github.com/ledgerd/recordcache/module/irrecoverable"
	"github.com/ledgerd/recordcache/storage"
)

// UpsertByKey encodes the entity and stores it under key, overwriting any existing value.
// No errors expected during normal operations.
func UpsertByKey(w storage.Writer, key []byte, entity interface{}) error {
	val, err := encodeEntity(entity)
	if err != nil {
		return err
	}

	err = w.Set(key, val)
	if err != nil {
		return irrecoverable.NewExceptionf("could not store data: %w", err)
	}
	return nil
}

// InsertByKey encodes the entity and stores it under key, which must not exist yet.
// Expected errors during normal operations:
//   - storage.ErrAlreadyExists if the key already holds a value
func InsertByKey(rw storage.ReaderWriter, key []byte, entity interface{}) error {
	_, closer, err := rw.Get(key)
	if err == nil {
		_ = closer.Close()
		return fmt.Errorf("could not insert %x: %w", key, storage.ErrAlreadyExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return irrecoverable.NewExceptionf("could not check key %x: %w", key, err)
	}
	return UpsertByKey(rw, key, entity)
}

// RetrieveByKey decodes the value stored under key into entity, which must be a pointer.
// Expected errors during normal operations:
//   - storage.ErrNotFound if the key does not exist
func RetrieveByKey(r storage.Reader, key []byte, entity interface{}) (errToReturn error) {
	val, closer, err := r.Get(key)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := closer.Close()
		if errToReturn == nil && closeErr != nil {
			errToReturn = fmt.Errorf("could not release value: %w", closeErr)
		}
	}()

	return decodeValue(val, entity)
}

// RemoveByKey removes the value stored under key. Removing a missing key is a no-op.
// No errors expected during normal operations.
func RemoveByKey(w storage.Writer, key []byte) error {
	err := w.Delete(key)
	if err != nil {
		return irrecoverable.NewExceptionf("could not delete item: %w", err)
	}
	return nil
}

// retrieveCounter reads a counter, treating a missing key as zero.
func retrieveCounter(r storage.Reader, key []byte) (counter uint64, errToReturn error) {
	val, closer, err := r.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not load counter: %w", err)
	}
	defer func() {
		closeErr := closer.Close()
		if errToReturn == nil && closeErr != nil {
			errToReturn = fmt.Errorf("could not release counter: %w", closeErr)
		}
	}()

	return decodeCounter(val)
}

func upsertCounter(w storage.Writer, key []byte, counter uint64) error {
	err := w.Set(key, encodeCounter(counter))
	if err != nil {
		return irrecoverable.NewExceptionf("could not store counter: %w", err)
	}
	return nil
}
