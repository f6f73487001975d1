package recordcache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
	"github.com/ledgerd/recordcache/module/mempool"
	"github.com/ledgerd/recordcache/module/updatable_configs"
	"github.com/ledgerd/recordcache/storage"
)

// RecordCache indexes the outcomes of every transaction handled inside the deduplication
// window. It answers duplicate classification for consensus and serves receipt and
// record queries, and it persists one minimal receipt entry per outcome to the receipt
// log so that any replica can rebuild the same state after a restart or reconnect.
//
// AddRecordSource, ResetRoundReceipts, CommitRoundReceipts and Rebuild must only be
// called from the single handle goroutine. All queries are safe for concurrent use.
type RecordCache struct {
	log        zerolog.Logger
	metrics    module.RecordCacheMetrics
	dedup      mempool.DeduplicationCache
	configs    *updatable_configs.CacheConfigs
	network    module.NetworkInfo
	receiptLog storage.ReceiptLog

	// mu guards the outer maps; the values carry their own locks
	mu        sync.RWMutex
	histories map[ledger.TransactionID]*HistorySource
	payers    map[ledger.AccountID]*transactionSet

	// roundReceipts is only touched by the handle goroutine
	roundReceipts []ledger.TransactionReceiptEntry
}

// New creates the record cache and rebuilds its state from the receipt log.
func New(
	log zerolog.Logger,
	metrics module.RecordCacheMetrics,
	dedup mempool.DeduplicationCache,
	configs *updatable_configs.CacheConfigs,
	network module.NetworkInfo,
	receiptLog storage.ReceiptLog,
) (*RecordCache, error) {
	c := &RecordCache{
		log:        log.With().Str("module", "record_cache").Logger(),
		metrics:    metrics,
		dedup:      dedup,
		configs:    configs,
		network:    network,
		receiptLog: receiptLog,
		histories:  make(map[ledger.TransactionID]*HistorySource),
		payers:     make(map[ledger.AccountID]*transactionSet),
	}

	err := c.Rebuild()
	if err != nil {
		return nil, fmt.Errorf("could not rebuild record cache: %w", err)
	}
	return c, nil
}

// AddRecordSource ingests the outcomes of handling the user transaction submitted by
// the node. Every receipt of the source is appended to the current round, indexed under
// its base transaction id and indexed under its payer. Receipts that are node due
// diligence failures do not count the node as a submitter. When the node failed due
// diligence, the user transaction and its children are indexed under the node's
// account rather than the payer's.
func (c *RecordCache) AddRecordSource(nodeID uint64, userTxnID ledger.TransactionID, dueDiligenceFailure bool, source RecordSource) {
	receipts := source.IdentifiedReceipts()
	for _, identified := range receipts {
		id := identified.TransactionID
		status := identified.Receipt.Status

		c.roundReceipts = append(c.roundReceipts, ledger.TransactionReceiptEntry{
			NodeID:        nodeID,
			TransactionID: id,
			Status:        status,
		})

		history := c.historyOrCreate(id.Base())
		if !status.IsNodeFailure() {
			history.AddNodeID(nodeID)
		}
		history.AddRecordSource(source)

		payer := id.Payer
		if dueDiligenceFailure && id.MatchesExceptNonce(userTxnID) {
			payer = c.nodeAccountOr(nodeID, payer)
		}
		c.payerSetOrCreate(payer).add(id)
	}

	c.metrics.RecordSourceAdded(len(receipts))
	c.reportSize()
}

// ResetRoundReceipts starts a new round, dropping the receipt entries of the previous one.
func (c *RecordCache) ResetRoundReceipts() {
	c.roundReceipts = c.roundReceipts[:0]
}

// RoundReceipts returns a copy of the receipt entries of the current round.
func (c *RecordCache) RoundReceipts() []ledger.TransactionReceiptEntry {
	entries := make([]ledger.TransactionReceiptEntry, len(c.roundReceipts))
	copy(entries, c.roundReceipts)
	return entries
}

// HasDuplicate classifies a submission of the exact transaction id by the node.
func (c *RecordCache) HasDuplicate(id ledger.TransactionID, nodeID uint64) ledger.DuplicateCheckResult {
	result := ledger.NoDuplicate

	c.mu.RLock()
	history, ok := c.histories[id]
	c.mu.RUnlock()

	if ok && history.HasNodeIDs() {
		result = ledger.OtherNode
		if history.HasNodeID(nodeID) {
			result = ledger.SameNode
		}
	}

	c.metrics.DuplicateChecked(result)
	return result
}

// GetHistory returns the history of the transaction, ledger.EmptyHistory when the
// transaction was screened by this node but not handled yet, and nil when it is unknown.
func (c *RecordCache) GetHistory(id ledger.TransactionID) *ledger.History {
	history, ok := c.history(id.Base())
	if ok {
		return history.HistoryOf(id)
	}
	if c.dedup.Contains(id) {
		return ledger.EmptyHistory
	}
	return nil
}

// GetReceipts returns the receipts of the transaction, an empty source reporting
// ledger.PendingReceipt when the transaction was screened but not handled yet, and nil
// when it is unknown.
func (c *RecordCache) GetReceipts(id ledger.TransactionID) ReceiptSource {
	history, ok := c.history(id.Base())
	if ok {
		return history
	}
	if c.dedup.Contains(id) {
		return NewHistorySource()
	}
	return nil
}

func (c *RecordCache) history(base ledger.TransactionID) (*HistorySource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	history, ok := c.histories[base]
	return history, ok
}

func (c *RecordCache) historyOrCreate(base ledger.TransactionID) *HistorySource {
	c.mu.Lock()
	defer c.mu.Unlock()
	history, ok := c.histories[base]
	if !ok {
		history = NewHistorySource()
		c.histories[base] = history
	}
	return history
}

func (c *RecordCache) payerSet(payer ledger.AccountID) (*transactionSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, ok := c.payers[payer]
	return set, ok
}

func (c *RecordCache) payerSetOrCreate(payer ledger.AccountID) *transactionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.payers[payer]
	if !ok {
		set = newTransactionSet()
		c.payers[payer] = set
	}
	return set
}

// nodeAccountOr returns the account of the node, or fallback when the node is unknown.
func (c *RecordCache) nodeAccountOr(nodeID uint64, fallback ledger.AccountID) ledger.AccountID {
	account, ok := c.network.AccountIDOfNode(nodeID)
	if !ok {
		c.log.Debug().
			Uint64("node_id", nodeID).
			Str("payer", fallback.String()).
			Msg("unknown node account, indexing under payer")
		return fallback
	}
	return account
}

func (c *RecordCache) reportSize() {
	c.mu.RLock()
	histories, payers := len(c.histories), len(c.payers)
	c.mu.RUnlock()
	c.metrics.CacheSize(histories, payers)
}
