package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/ledgerd/recordcache/module"
)

// DefaultPebbleOptions returns the options used for the receipt log database.
func DefaultPebbleOptions(cache *pebble.Cache) *pebble.Options {
	opts := &pebble.Options{
		Cache:              cache,
		FormatMajorVersion: pebble.FormatNewest,
		// the receipt log is written once per round, so a small memtable suffices
		MemTableSize: 8 << 20,
	}
	return opts.EnsureDefaults()
}

// Open opens the pebble database in dir and returns a receipt log on it together with
// a function closing both.
func Open(log zerolog.Logger, collector module.ReceiptLogMetrics, dir string) (*ReceiptLog, func() error, error) {
	cache := pebble.NewCache(1 << 20)
	defer cache.Unref()

	db, err := pebble.Open(dir, DefaultPebbleOptions(cache))
	if err != nil {
		return nil, nil, fmt.Errorf("could not open pebble db at %s: %w", dir, err)
	}

	receiptLog, err := NewReceiptLog(log, collector, db)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close db: %w", closeErr))
		}
		return nil, nil, err
	}

	closer := func() error {
		var result *multierror.Error
		if err := receiptLog.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		if err := db.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close db: %w", err))
		}
		return result.ErrorOrNil()
	}
	return receiptLog, closer, nil
}
