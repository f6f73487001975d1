package badger

import (
	"sync"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
	"github.com/ledgerd/recordcache/module/metrics"
	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/storage/operation"
)

// ReceiptLog stores the committed rounds of receipt entries in badger.
type ReceiptLog struct {
	db      *badger.DB
	log     zerolog.Logger
	metrics module.ReceiptLogMetrics

	// txLock is held by the open transaction, if any
	txLock sync.Mutex
}

var _ storage.ReceiptLog = (*ReceiptLog)(nil)

// NewReceiptLog returns a receipt log on an already opened database. The caller keeps
// ownership of db; Close does not close it.
func NewReceiptLog(log zerolog.Logger, collector module.ReceiptLogMetrics, db *badger.DB) (*ReceiptLog, error) {
	l := &ReceiptLog{
		db:      db,
		log:     log.With().Str("module", "receipt_log").Str("backend", metrics.BackendBadger).Logger(),
		metrics: collector,
	}

	var rounds uint64
	err := db.View(func(txn *badger.Txn) error {
		var err error
		rounds, err = operation.CountRoundReceipts(txnReaderWriter{txn: txn})
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not read receipt queue")
	}
	l.metrics.ReceiptLogRounds(rounds)
	l.log.Debug().Uint64("rounds", rounds).Msg("receipt log opened")

	return l, nil
}

// Iterate visits the committed rounds from oldest to newest.
func (l *ReceiptLog) Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error {
	return l.db.View(func(txn *badger.Txn) error {
		return operation.IterateRoundReceipts(txnReaderWriter{txn: txn}, fn)
	})
}

// Begin starts a read-write transaction, blocking until any open transaction ends.
func (l *ReceiptLog) Begin() (storage.ReceiptTransaction, error) {
	l.txLock.Lock()
	return &receiptTransaction{
		log: l,
		txn: l.db.NewTransaction(true),
	}, nil
}

// Close is a no-op; the database is owned by the caller.
func (l *ReceiptLog) Close() error {
	return nil
}

type receiptTransaction struct {
	log   *ReceiptLog
	txn   *badger.Txn
	ended bool
}

var _ storage.ReceiptTransaction = (*receiptTransaction)(nil)

func (t *receiptTransaction) rw() (txnReaderWriter, error) {
	if t.ended {
		return txnReaderWriter{}, storage.ErrClosed
	}
	return txnReaderWriter{txn: t.txn}, nil
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
		t.txn.Discard()
		return err
	}

	start := time.Now()
	err = t.txn.Commit()
	if err != nil {
		return errors.Wrap(err, "could not commit receipt transaction")
	}
	t.log.metrics.ReceiptLogOperation(metrics.OpCommit, time.Since(start))
	t.log.metrics.ReceiptLogRounds(rounds)
	return nil
}

func (t *receiptTransaction) Discard() {
	if t.ended {
		return
	}
	t.txn.Discard()
	t.end()
}

func (t *receiptTransaction) end() {
	t.ended = true
	t.log.txLock.Unlock()
}
