package mempool

import "github.com/ledgerd/recordcache/model/ledger"

// DeduplicationCache is the set of transactions this node has screened for submission.
// Entries whose valid start has left the deduplication window are pruned before every
// read or write, so membership only ever reflects transactions still able to reach
// consensus.
type DeduplicationCache interface {
	// Add records that the node tried to submit the transaction. Ids already outside the
	// window are ignored. Adding an id twice is a no-op.
	Add(id ledger.TransactionID)
	// Contains reports whether the node already screened the exact transaction id.
	Contains(id ledger.TransactionID) bool
	// Clear removes every entry. Used when rebuilding from the receipt log.
	Clear()
	// Size returns the number of entries currently held, without pruning.
	Size() uint
}
