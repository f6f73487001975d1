package ledger

// TransactionReceipt is the outcome of handling a transaction.
type TransactionReceipt struct {
	Status Status
}

// PendingReceipt is reported for transactions known to the node but not yet handled.
var PendingReceipt = TransactionReceipt{Status: StatusUnknown}

// IdentifiedReceipt pairs a receipt with the transaction it belongs to.
type IdentifiedReceipt struct {
	TransactionID TransactionID
	Receipt       TransactionReceipt
}

// TransactionRecord is the full record produced for a handled transaction.
type TransactionRecord struct {
	TransactionID            TransactionID
	Receipt                  TransactionReceipt
	ConsensusTimestamp       Timestamp
	ParentConsensusTimestamp *Timestamp
	TransactionFee           uint64
	Memo                     string
}

// TransactionReceiptEntry is the minimal per-transaction unit persisted in the receipt log.
type TransactionReceiptEntry struct {
	NodeID        uint64
	TransactionID TransactionID
	Status        Status
}

// RoundReceipts holds the receipt entries produced during one consensus round, in
// handling order.
type RoundReceipts struct {
	Entries []TransactionReceiptEntry
}

// NewRoundReceipts returns a round batch holding a copy of entries.
func NewRoundReceipts(entries []TransactionReceiptEntry) *RoundReceipts {
	copied := make([]TransactionReceiptEntry, len(entries))
	copy(copied, entries)
	return &RoundReceipts{Entries: copied}
}

// LatestValidStart returns the latest valid start among the round's entries. The round
// may only be discarded once this time has left the deduplication window.
func (r *RoundReceipts) LatestValidStart() Timestamp {
	var latest Timestamp
	for i, entry := range r.Entries {
		if i == 0 || latest.Before(entry.TransactionID.ValidStart) {
			latest = entry.TransactionID.ValidStart
		}
	}
	return latest
}

// IsEmpty reports whether the round holds no entries.
func (r *RoundReceipts) IsEmpty() bool {
	return r == nil || len(r.Entries) == 0
}
