package recordcache

import (
	"sync"

	"github.com/ledgerd/recordcache/model/ledger"
)

// PartialRecordSource is a RecordSource that grows one record at a time. It holds the
// synthetic records reconstructed from the receipt log, which only carry the
// transaction id and status.
type PartialRecordSource struct {
	mu      sync.RWMutex
	records []*ledger.TransactionRecord
}

var _ RecordSource = (*PartialRecordSource)(nil)

func NewPartialRecordSource() *PartialRecordSource {
	return &PartialRecordSource{}
}

// Incorporate appends the record to the source.
func (s *PartialRecordSource) Incorporate(record *ledger.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// snapshot returns the records incorporated so far. Appends after the snapshot do not
// affect it.
func (s *PartialRecordSource) snapshot() []*ledger.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[:len(s.records):len(s.records)]
}

func (s *PartialRecordSource) IdentifiedReceipts() []ledger.IdentifiedReceipt {
	return identifiedReceiptsOf(s.snapshot())
}

func (s *PartialRecordSource) ForEachTxnRecord(visit func(record *ledger.TransactionRecord)) {
	for _, record := range s.snapshot() {
		visit(record)
	}
}

func (s *PartialRecordSource) ReceiptOf(id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	return receiptIn(s.snapshot(), id)
}

func (s *PartialRecordSource) ChildReceiptsOf(id ledger.TransactionID) []ledger.TransactionReceipt {
	return childReceiptsIn(s.snapshot(), id)
}
