package recordcache

import "github.com/ledgerd/recordcache/model/ledger"

// ListRecordSource is a RecordSource over records computed up front.
type ListRecordSource struct {
	records []*ledger.TransactionRecord
}

var _ RecordSource = (*ListRecordSource)(nil)

// NewListRecordSource returns a source over the given records, kept in the given order.
func NewListRecordSource(records ...*ledger.TransactionRecord) *ListRecordSource {
	copied := make([]*ledger.TransactionRecord, len(records))
	copy(copied, records)
	return &ListRecordSource{records: copied}
}

func (s *ListRecordSource) IdentifiedReceipts() []ledger.IdentifiedReceipt {
	return identifiedReceiptsOf(s.records)
}

func (s *ListRecordSource) ForEachTxnRecord(visit func(record *ledger.TransactionRecord)) {
	for _, record := range s.records {
		visit(record)
	}
}

func (s *ListRecordSource) ReceiptOf(id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	return receiptIn(s.records, id)
}

func (s *ListRecordSource) ChildReceiptsOf(id ledger.TransactionID) []ledger.TransactionReceipt {
	return childReceiptsIn(s.records, id)
}
