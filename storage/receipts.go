package storage

import "github.com/ledgerd/recordcache/model/ledger"

// ReceiptQueue is the FIFO of committed rounds of receipt entries, ordered by round
// commit order.
type ReceiptQueue interface {
	// Peek returns the oldest round without removing it.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the queue is empty
	Peek() (*ledger.RoundReceipts, error)

	// Poll removes and returns the oldest round.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the queue is empty
	Poll() (*ledger.RoundReceipts, error)

	// Add appends a round at the tail of the queue.
	Add(round *ledger.RoundReceipts) error

	// Iterate visits the rounds from oldest to newest until fn returns false or an error.
	Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error
}

// ReceiptTransaction is a ReceiptQueue whose modifications only become durable on Commit.
// A transaction must be ended with exactly one call to Commit or Discard; afterwards
// every method returns storage.ErrClosed.
type ReceiptTransaction interface {
	ReceiptQueue

	// Commit persists all modifications made through the transaction.
	Commit() error

	// Discard drops all modifications made through the transaction.
	Discard()
}

// ReceiptLog is the durable store of committed rounds.
type ReceiptLog interface {
	// Iterate visits the committed rounds from oldest to newest until fn returns false
	// or an error.
	Iterate(fn func(round *ledger.RoundReceipts) (bool, error)) error

	// Begin starts a read-write transaction. Only one transaction may be open at a time.
	Begin() (ReceiptTransaction, error)

	// Close releases the log. Open transactions must be ended first.
	Close() error
}
