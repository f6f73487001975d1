package inmemory

import (
	"sync"

	"github.com/ef-ds/deque"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
	"github.com/ledgerd/recordcache/storage"
)

// ReceiptLog keeps the committed rounds in memory. A transaction works on its own copy
// of the queue, which replaces the committed queue on Commit. Used by tests and tools
// that do not need durability.
type ReceiptLog struct {
	mu        sync.Mutex
	committed *deque.Deque
	metrics   module.ReceiptLogMetrics
	closed    bool

	// txLock is held by the open transaction, if any
	txLock sync.Mutex
}

var _ storage.ReceiptLog = (*ReceiptLog)(nil)

// NewReceiptLog returns a log holding the given rounds, oldest first.
func NewReceiptLog(collector module.ReceiptLogMetrics, rounds ...*ledger.RoundReceipts) *ReceiptLog {
	committed := deque.New()
	for _, round := range rounds {
		committed.PushBack(ledger.NewRoundReceipts(round.Entries))
	}
	collector.ReceiptLogRounds(uint64(committed.Len()))
	return &ReceiptLog{
		committed: committed,
		metrics:   collector,
	}
}

// Iterate visits the committed rounds from oldest to newest.
func (l *ReceiptLog) Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error {
	l.mu.Lock()
	rounds := snapshot(l.committed)
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return storage.ErrClosed
	}
	return iterate(rounds, fn)
}

// Begin starts a transaction on a copy of the committed rounds, blocking until any open
// transaction ends.
func (l *ReceiptLog) Begin() (storage.ReceiptTransaction, error) {
	l.txLock.Lock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		l.txLock.Unlock()
		return nil, storage.ErrClosed
	}
	working := deque.New()
	for _, round := range snapshot(l.committed) {
		working.PushBack(round)
	}
	return &receiptTransaction{log: l, working: working}, nil
}

// Close drops the committed rounds.
func (l *ReceiptLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.committed.Init()
	return nil
}

type receiptTransaction struct {
	log     *ReceiptLog
	working *deque.Deque
	ended   bool
}

var _ storage.ReceiptTransaction = (*receiptTransaction)(nil)

func (t *receiptTransaction) Peek() (*ledger.RoundReceipts, error) {
	if t.ended {
		return nil, storage.ErrClosed
	}
	front, ok := t.working.Front()
	if !ok {
		return nil, storage.ErrNotFound
	}
	round := front.(*ledger.RoundReceipts)
	return ledger.NewRoundReceipts(round.Entries), nil
}

func (t *receiptTransaction) Poll() (*ledger.RoundReceipts, error) {
	if t.ended {
		return nil, storage.ErrClosed
	}
	front, ok := t.working.PopFront()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return front.(*ledger.RoundReceipts), nil
}

func (t *receiptTransaction) Add(round *ledger.RoundReceipts) error {
	if t.ended {
		return storage.ErrClosed
	}
	t.working.PushBack(ledger.NewRoundReceipts(round.Entries))
	return nil
}

func (t *receiptTransaction) Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error {
	if t.ended {
		return storage.ErrClosed
	}
	return iterate(snapshot(t.working), fn)
}

func (t *receiptTransaction) Commit() error {
	if t.ended {
		return storage.ErrClosed
	}
	defer t.end()

	t.log.mu.Lock()
	defer t.log.mu.Unlock()
	if t.log.closed {
		return storage.ErrClosed
	}
	t.log.committed = t.working
	t.log.metrics.ReceiptLogRounds(uint64(t.working.Len()))
	return nil
}

func (t *receiptTransaction) Discard() {
	if t.ended {
		return
	}
	t.end()
}

func (t *receiptTransaction) end() {
	t.ended = true
	t.log.txLock.Unlock()
}

// snapshot lists the rounds of q, oldest first, leaving q unchanged. The deque has no
// random access, so every element is rotated from the front to the back once.
func snapshot(q *deque.Deque) []*ledger.RoundReceipts {
	rounds := make([]*ledger.RoundReceipts, 0, q.Len())
	for i := q.Len(); i > 0; i-- {
		v, _ := q.PopFront()
		q.PushBack(v)
		rounds = append(rounds, v.(*ledger.RoundReceipts))
	}
	return rounds
}

func iterate(rounds []*ledger.RoundReceipts, fn func(round *ledger.RoundReceipts) (bool, error)) error {
	for _, round := range rounds {
		next, err := fn(ledger.NewRoundReceipts(round.Entries))
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}
