package pebble

import (
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
	"github.com/ledgerd/recordcache/module/metrics"
	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/storage/operation"
)

// ReceiptLog stores the committed rounds of receipt entries in pebble. Transactions are
// indexed batches committed with pebble.Sync.
type ReceiptLog struct {
	db      *pebble.DB
	log     zerolog.Logger
	metrics module.ReceiptLogMetrics

	// txLock is held by the open transaction, if any
	txLock sync.Mutex
}

var _ storage.ReceiptLog = (*ReceiptLog)(nil)

// NewReceiptLog returns a receipt log on an already opened database. The caller keeps
// ownership of db; Close does not close it.
func NewReceiptLog(log zerolog.Logger, collector module.ReceiptLogMetrics, db *pebble.DB) (*ReceiptLog, error) {
	l := &ReceiptLog{
		db:      db,
		log:     log.With().Str("module", "receipt_log").Str("backend", metrics.BackendPebble).Logger(),
		metrics: collector,
	}

	rounds, err := operation.CountRoundReceipts(reader{r: db})
	if err != nil {
		return nil, fmt.Errorf("could not read receipt queue: %w", err)
	}
	l.metrics.ReceiptLogRounds(rounds)
	l.log.Debug().Uint64("rounds", rounds).Msg("receipt log opened")

	return l, nil
}

// Iterate visits the committed rounds from oldest to newest, reading from a snapshot.
func (l *ReceiptLog) Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error {
	snapshot := l.db.NewSnapshot()
	defer snapshot.Close()
	return operation.IterateRoundReceipts(reader{r: snapshot}, fn)
}

// Begin starts a read-write transaction, blocking until any open transaction ends.
func (l *ReceiptLog) Begin() (storage.ReceiptTransaction, error) {
	l.txLock.Lock()
	return &receiptTransaction{
		log:   l,
		batch: l.db.NewIndexedBatch(),
	}, nil
}

// Close is a no-op; the database is owned by the caller.
func (l *ReceiptLog) Close() error {
	return nil
}

type receiptTransaction struct {
	log   *ReceiptLog
	batch *pebble.Batch
	ended bool
}

var _ storage.ReceiptTransaction = (*receiptTransaction)(nil)

func (t *receiptTransaction) rw() (batchReaderWriter, error) {
	if t.ended {
		return batchReaderWriter{}, storage.ErrClosed
	}
	return newBatchReaderWriter(t.batch), nil
}

func (t *receiptTransaction) Peek() (*ledger.RoundReceipts, error) {
	rw, err := t.rw()
	if err != nil {
		return nil, err
	}
	var round ledger.RoundReceipts
	err = operation.PeekRoundReceipts(rw, &round)
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (t *receiptTransaction) Poll() (*ledger.RoundReceipts, error) {
	rw, err := t.rw()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	var round ledger.RoundReceipts
	err = operation.PollRoundReceipts(rw, &round)
	if err != nil {
		return nil, err
	}
	t.log.metrics.ReceiptLogOperation(metrics.OpPoll, time.Since(start))
	return &round, nil
}

func (t *receiptTransaction) Add(round *ledger.RoundReceipts) error {
	rw, err := t.rw()
	if err != nil {
		return err
	}
	start := time.Now()
	err = operation.InsertRoundReceipts(rw, round)
	if err != nil {
		return err
	}
	t.log.metrics.ReceiptLogOperation(metrics.OpAdd, time.Since(start))
	return nil
}

func (t *receiptTransaction) Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error {
	rw, err := t.rw()
	if err != nil {
		return err
	}
	return operation.IterateRoundReceipts(rw, fn)
}

func (t *receiptTransaction) Commit() error {
	rw, err := t.rw()
	if err != nil {
		return err
	}
	defer t.end()

	rounds, err := operation.CountRoundReceipts(rw)
	if err != nil {
		return err
	}

	start := time.Now()
	err = t.batch.Commit(pebble.Sync)
	if err != nil {
		return fmt.Errorf("could not commit receipt transaction: %w", err)
	}
	t.log.metrics.ReceiptLogOperation(metrics.OpCommit, time.Since(start))
	t.log.metrics.ReceiptLogRounds(rounds)
	return nil
}

func (t *receiptTransaction) Discard() {
	if t.ended {
		return
	}
	t.end()
}

// end releases the batch and the transaction lock.
func (t *receiptTransaction) end() {
	t.ended = true
	err := t.batch.Close()
	if err != nil {
		t.log.log.Warn().Err(err).Msg("could not close receipt batch")
	}
	t.log.txLock.Unlock()
}
