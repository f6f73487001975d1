package recordcache

import (
	"sync"

	"github.com/ledgerd/recordcache/model/ledger"
)

// TranslatedRecordSource is a RecordSource over raw execution outputs. The outputs are
// translated on first access, exactly once even when first accessed concurrently, and
// the resulting records are never recomputed.
type TranslatedRecordSource struct {
	outputs    []ledger.ExecutionOutput
	translator Translator

	once    sync.Once
	records []*ledger.TransactionRecord
}

var _ RecordSource = (*TranslatedRecordSource)(nil)

// NewTranslatedRecordSource returns a source translating the given outputs lazily.
func NewTranslatedRecordSource(translator Translator, outputs ...ledger.ExecutionOutput) *TranslatedRecordSource {
	copied := make([]ledger.ExecutionOutput, len(outputs))
	copy(copied, outputs)
	return &TranslatedRecordSource{
		outputs:    copied,
		translator: translator,
	}
}

// translated returns the memoized records.
func (s *TranslatedRecordSource) translated() []*ledger.TransactionRecord {
	s.once.Do(func() {
		records := make([]*ledger.TransactionRecord, 0, len(s.outputs))
		for _, output := range s.outputs {
			records = append(records, s.translator.Translate(output))
		}
		s.records = records
	})
	return s.records
}

func (s *TranslatedRecordSource) IdentifiedReceipts() []ledger.IdentifiedReceipt {
	return identifiedReceiptsOf(s.translated())
}

func (s *TranslatedRecordSource) ForEachTxnRecord(visit func(record *ledger.TransactionRecord)) {
	for _, record := range s.translated() {
		visit(record)
	}
}

func (s *TranslatedRecordSource) ReceiptOf(id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	return receiptIn(s.translated(), id)
}

func (s *TranslatedRecordSource) ChildReceiptsOf(id ledger.TransactionID) []ledger.TransactionReceipt {
	return childReceiptsIn(s.translated(), id)
}
