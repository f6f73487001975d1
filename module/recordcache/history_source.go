package recordcache

import (
	"errors"
	"sort"
	"sync"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/irrecoverable"
)

// ReceiptSource answers receipt queries about a transaction and its children.
type ReceiptSource interface {
	// PriorityReceipt returns the canonical receipt of the transaction, or
	// ledger.PendingReceipt when nothing has been recorded yet.
	// No errors are expected during normal operations; an error is an irrecoverable
	// exception meaning the id does not belong to this source.
	PriorityReceipt(id ledger.TransactionID) (ledger.TransactionReceipt, error)

	// ChildReceipt returns the first receipt recorded for the id, or false when no record
	// has the id.
	ChildReceipt(id ledger.TransactionID) (ledger.TransactionReceipt, bool)

	// DuplicateReceipts returns every receipt recorded for the id except the priority one.
	DuplicateReceipts(id ledger.TransactionID) []ledger.TransactionReceipt

	// ChildReceipts returns the receipts of all children of the id.
	ChildReceipts(id ledger.TransactionID) []ledger.TransactionReceipt
}

// HistorySource aggregates everything recorded for one base transaction id: the nodes
// that submitted it without failing due diligence, and the record sources contributing
// records for it and its children, in the order they were added.
//
// Mutations come from the single handle goroutine. Queries may run concurrently and
// work on snapshots taken under the read lock.
type HistorySource struct {
	mu      sync.RWMutex
	nodeIDs map[uint64]struct{}
	sources []RecordSource
}

var _ ReceiptSource = (*HistorySource)(nil)

func NewHistorySource() *HistorySource {
	return &HistorySource{
		nodeIDs: make(map[uint64]struct{}),
	}
}

// AddNodeID records that the node submitted the transaction without failing due diligence.
func (h *HistorySource) AddNodeID(nodeID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodeIDs[nodeID] = struct{}{}
}

// AddRecordSource appends the source unless this very source was already added, and
// reports whether it was appended.
func (h *HistorySource) AddRecordSource(source RecordSource) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.sources {
		if existing == source {
			return false
		}
	}
	h.sources = append(h.sources, source)
	return true
}

// HasNodeID reports whether the node submitted the transaction without failing due diligence.
func (h *HistorySource) HasNodeID(nodeID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.nodeIDs[nodeID]
	return ok
}

// HasNodeIDs reports whether any node submitted the transaction without failing due diligence.
func (h *HistorySource) HasNodeIDs() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.nodeIDs) > 0
}

// NodeIDs returns the classifying nodes in ascending order.
func (h *HistorySource) NodeIDs() []uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uint64, 0, len(h.nodeIDs))
	for id := range h.nodeIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RecordSources returns the contributing sources in the order they were added.
func (h *HistorySource) RecordSources() []RecordSource {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sources[:len(h.sources):len(h.sources)]
}

// PriorityReceipt returns the first receipt recorded for id, unless it is a node due
// diligence failure, in which case the first later receipt that is not a node failure
// wins. When every receipt is a node failure the first one is returned.
func (h *HistorySource) PriorityReceipt(id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	sources := h.RecordSources()
	if len(sources) == 0 {
		return ledger.PendingReceipt, nil
	}
	receipts := receiptsFor(sources, id)
	if len(receipts) == 0 {
		return ledger.TransactionReceipt{}, irrecoverable.NewExceptionf("history of %s has no receipt for %s: %w",
			id.Base(), id, ErrUnknownTransaction)
	}
	return priorityOf(receipts), nil
}

func (h *HistorySource) ChildReceipt(id ledger.TransactionID) (ledger.TransactionReceipt, bool) {
	for _, source := range h.RecordSources() {
		receipt, err := source.ReceiptOf(id)
		if err == nil {
			return receipt, true
		}
	}
	return ledger.TransactionReceipt{}, false
}

func (h *HistorySource) DuplicateReceipts(id ledger.TransactionID) []ledger.TransactionReceipt {
	receipts := receiptsFor(h.RecordSources(), id)
	if len(receipts) == 0 {
		return nil
	}
	priority := priorityOf(receipts)

	duplicates := make([]ledger.TransactionReceipt, 0, len(receipts)-1)
	skipped := false
	for _, receipt := range receipts {
		if !skipped && receipt == priority {
			skipped = true
			continue
		}
		duplicates = append(duplicates, receipt)
	}
	return duplicates
}

func (h *HistorySource) ChildReceipts(id ledger.TransactionID) []ledger.TransactionReceipt {
	var receipts []ledger.TransactionReceipt
	for _, source := range h.RecordSources() {
		receipts = append(receipts, source.ChildReceiptsOf(id)...)
	}
	return receipts
}

// HistoryOf returns the history of the user transaction. Records with the same id as the
// user transaction are duplicates; when the user transaction is a base transaction, the
// records of its children are child records. Both lists keep source order.
func (h *HistorySource) HistoryOf(userTxnID ledger.TransactionID) *ledger.History {
	history := &ledger.History{
		NodeIDs: h.NodeIDs(),
	}
	for _, source := range h.RecordSources() {
		source.ForEachTxnRecord(func(record *ledger.TransactionRecord) {
			id := record.TransactionID
			switch {
			case !id.MatchesExceptNonce(userTxnID):
				// unrelated record, e.g. a preceding transaction of another payer
			case id.Nonce == userTxnID.Nonce:
				history.DuplicateRecords = append(history.DuplicateRecords, record)
			case userTxnID.IsBase():
				history.ChildRecords = append(history.ChildRecords, record)
			}
		})
	}
	return history
}

// receiptsFor returns all receipts for exactly id, in source order and then record order.
func receiptsFor(sources []RecordSource, id ledger.TransactionID) []ledger.TransactionReceipt {
	var receipts []ledger.TransactionReceipt
	for _, source := range sources {
		source.ForEachTxnRecord(func(record *ledger.TransactionRecord) {
			if record.TransactionID == id {
				receipts = append(receipts, record.Receipt)
			}
		})
	}
	return receipts
}

func priorityOf(receipts []ledger.TransactionReceipt) ledger.TransactionReceipt {
	first := receipts[0]
	if !first.Status.IsNodeFailure() {
		return first
	}
	for _, receipt := range receipts[1:] {
		if !receipt.Status.IsNodeFailure() {
			return receipt
		}
	}
	return first
}

// IsUnknownTransaction reports whether err signals a query about a transaction the
// source holds nothing for.
func IsUnknownTransaction(err error) bool {
	return errors.Is(err, ErrUnknownTransaction)
}
