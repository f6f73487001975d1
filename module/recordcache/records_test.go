package recordcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/recordcache"
	"github.com/ledgerd/recordcache/utils/unittest"
)

// brokenSource reports its receipts but fails while its records are visited, the way a
// source whose backing data is modified underneath a reader would.
type brokenSource struct {
	id ledger.TransactionID
}

var _ recordcache.RecordSource = (*brokenSource)(nil)

func (s *brokenSource) IdentifiedReceipts() []ledger.IdentifiedReceipt {
	return []ledger.IdentifiedReceipt{{TransactionID: s.id, Receipt: ledger.TransactionReceipt{Status: ledger.StatusSuccess}}}
}

func (s *brokenSource) ForEachTxnRecord(func(record *ledger.TransactionRecord)) {
	panic("records modified during iteration")
}

func (s *brokenSource) ReceiptOf(id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	return ledger.TransactionReceipt{Status: ledger.StatusSuccess}, nil
}

func (s *brokenSource) ChildReceiptsOf(ledger.TransactionID) []ledger.TransactionReceipt {
	return nil
}

func TestRecordCache_GetRecordsBestEffort(t *testing.T) {
	f := newCacheFixture(t, 1000)
	payer := unittest.AccountIDFixture()

	healthy := unittest.RecordFixture(unittest.TransactionIDFixture(990, unittest.WithPayer(payer)), ledger.StatusSuccess)
	f.add(3, healthy)

	broken := unittest.TransactionIDFixture(991, unittest.WithPayer(payer))
	f.cache.AddRecordSource(3, broken, false, &brokenSource{id: broken})

	var records []*ledger.TransactionRecord
	require.NotPanics(t, func() {
		records = f.cache.GetRecords(payer)
	})
	assert.LessOrEqual(t, len(records), 1)
	for _, record := range records {
		assert.Same(t, healthy, record)
	}

	t.Run("other payers are unaffected", func(t *testing.T) {
		id := unittest.TransactionIDFixture(990)
		record := unittest.RecordFixture(id, ledger.StatusSuccess)
		f.add(4, record)
		assert.Equal(t, []*ledger.TransactionRecord{record}, f.cache.GetRecords(id.Payer))
	})
}

func TestRecordCache_ConcurrentQueries(t *testing.T) {
	f := newCacheFixture(t, 1000)
	payer := unittest.AccountIDFixture()
	limit := f.configs.RecordsMaxQueryableByAccount()

	ids := make([]ledger.TransactionID, 200)
	for i := range ids {
		ids[i] = unittest.TransactionIDFixture(900+int64(i%50), unittest.WithPayer(payer))
	}

	var g errgroup.Group
	g.Go(func() error {
		for i, id := range ids {
			f.add(uint64(3+i%3), unittest.RecordFixture(id, ledger.StatusSuccess), unittest.RecordFixture(unittest.ChildIDFixture(id, 1), ledger.StatusSuccess))
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for _, id := range ids {
				records := f.cache.GetRecords(payer)
				if len(records) > limit {
					t.Errorf("got %d records, limit is %d", len(records), limit)
				}
				_ = f.cache.GetHistory(id)
				_ = f.cache.HasDuplicate(id, 3)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		assert.NotNil(t, f.cache.GetHistory(id))
	}
	assert.Len(t, f.cache.GetRecords(payer), limit)
}
