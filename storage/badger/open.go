package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/ledgerd/recordcache/module"
)

// Open opens the badger database in dir and returns a receipt log on it together with
// a function closing both.
func Open(log zerolog.Logger, collector module.ReceiptLogMetrics, dir string) (*ReceiptLog, func() error, error) {
	opts := badger.
		DefaultOptions(dir).
		WithKeepL0InMemory(true).
		WithLogger(newLogger(log))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open badger db at %s: %w", dir, err)
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
