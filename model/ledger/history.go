package ledger

// History is the snapshot of everything the node knows about a user transaction: the
// nodes that submitted it without failing due diligence, every record sharing its id
// (duplicates) and every record it spawned (children).
type History struct {
	NodeIDs          []uint64
	DuplicateRecords []*TransactionRecord
	ChildRecords     []*TransactionRecord
}

// EmptyHistory is returned for transactions known to the deduplication cache that have
// not been handled yet.
var EmptyHistory = &History{}

// IsEmpty reports whether no record has been produced for the transaction.
func (h *History) IsEmpty() bool {
	return len(h.DuplicateRecords) == 0 && len(h.ChildRecords) == 0
}

// UserTransactionRecord returns the first record for the user transaction, or nil when
// the transaction has not been handled.
func (h *History) UserTransactionRecord() *TransactionRecord {
	if len(h.DuplicateRecords) == 0 {
		return nil
	}
	return h.DuplicateRecords[0]
}

// UserTransactionReceipt returns the receipt of the user transaction, or PendingReceipt
// when it has not been handled.
func (h *History) UserTransactionReceipt() TransactionReceipt {
	record := h.UserTransactionRecord()
	if record == nil {
		return PendingReceipt
	}
	return record.Receipt
}

// OrderedRecords returns the user transaction record, then its children, then the
// remaining duplicates.
func (h *History) OrderedRecords() []*TransactionRecord {
	if h.IsEmpty() {
		return nil
	}
	records := make([]*TransactionRecord, 0, len(h.DuplicateRecords)+len(h.ChildRecords))
	if len(h.DuplicateRecords) > 0 {
		records = append(records, h.DuplicateRecords[0])
	}
	records = append(records, h.ChildRecords...)
	if len(h.DuplicateRecords) > 1 {
		records = append(records, h.DuplicateRecords[1:]...)
	}
	return records
}

// HasNode reports whether nodeID is among the classifying submitters.
func (h *History) HasNode(nodeID uint64) bool {
	for _, id := range h.NodeIDs {
		if id == nodeID {
			return true
		}
	}
	return false
}
