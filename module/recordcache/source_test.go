package recordcache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/recordcache"
	"github.com/ledgerd/recordcache/utils/unittest"
)

// TestRecordSources runs the same queries against every source variant holding the
// same user transaction, one child and one unrelated preceding transaction.
func TestRecordSources(t *testing.T) {
	user := unittest.TransactionIDFixture(1000)
	child := unittest.ChildIDFixture(user, 1)
	preceding := unittest.TransactionIDFixture(999)

	outputs := []ledger.ExecutionOutput{
		unittest.ExecutionOutputFixture(preceding, ledger.StatusSuccess),
		unittest.ExecutionOutputFixture(user, ledger.StatusSuccess),
		unittest.ExecutionOutputFixture(child, ledger.StatusInsufficientPayerBalance),
	}
	records := make([]*ledger.TransactionRecord, 0, len(outputs))
	for _, output := range outputs {
		records = append(records, recordcache.DefaultTranslator.Translate(output))
	}

	partial := recordcache.NewPartialRecordSource()
	for _, record := range records {
		partial.Incorporate(record)
	}

	sources := map[string]recordcache.RecordSource{
		"list":       recordcache.NewListRecordSource(records...),
		"translated": recordcache.NewTranslatedRecordSource(recordcache.DefaultTranslator, outputs...),
		"partial":    partial,
	}

	for name, source := range sources {
		source := source
		t.Run(name, func(t *testing.T) {
			t.Run("identified receipts keep source order", func(t *testing.T) {
				assert.Equal(t, []ledger.IdentifiedReceipt{
					{TransactionID: preceding, Receipt: ledger.TransactionReceipt{Status: ledger.StatusSuccess}},
					{TransactionID: user, Receipt: ledger.TransactionReceipt{Status: ledger.StatusSuccess}},
					{TransactionID: child, Receipt: ledger.TransactionReceipt{Status: ledger.StatusInsufficientPayerBalance}},
				}, source.IdentifiedReceipts())
			})

			t.Run("visits records in order", func(t *testing.T) {
				var visited []ledger.TransactionID
				source.ForEachTxnRecord(func(record *ledger.TransactionRecord) {
					visited = append(visited, record.TransactionID)
				})
				assert.Equal(t, []ledger.TransactionID{preceding, user, child}, visited)
			})

			t.Run("receipt of exact id", func(t *testing.T) {
				receipt, err := source.ReceiptOf(child)
				require.NoError(t, err)
				assert.Equal(t, ledger.StatusInsufficientPayerBalance, receipt.Status)

				_, err = source.ReceiptOf(unittest.ChildIDFixture(user, 2))
				require.Error(t, err)
				assert.True(t, recordcache.IsUnknownTransaction(err))
			})

			t.Run("child receipts", func(t *testing.T) {
				assert.Equal(t, []ledger.TransactionReceipt{{Status: ledger.StatusInsufficientPayerBalance}}, source.ChildReceiptsOf(user))
				assert.Empty(t, source.ChildReceiptsOf(preceding))
				assert.Empty(t, source.ChildReceiptsOf(child))
			})
		})
	}
}

func TestTranslatedRecordSource_Lazy(t *testing.T) {
	id := unittest.TransactionIDFixture(1000)
	calls := atomic.NewInt64(0)
	start := make(chan struct{})

	translator := recordcache.TranslatorFunc(func(output ledger.ExecutionOutput) *ledger.TransactionRecord {
		calls.Inc()
		<-start
		return recordcache.DefaultTranslator.Translate(output)
	})
	source := recordcache.NewTranslatedRecordSource(translator, unittest.ExecutionOutputFixture(id, ledger.StatusSuccess))
	assert.Equal(t, int64(0), calls.Load(), "translation must not happen on construction")

	var wg sync.WaitGroup
	receipts := make([][]ledger.IdentifiedReceipt, 10)
	for i := range receipts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receipts[i] = source.IdentifiedReceipts()
		}(i)
	}
	close(start)
	unittest.RequireReturnsBefore(t, wg.Wait, time.Second, "concurrent first access did not finish")

	assert.Equal(t, int64(1), calls.Load(), "outputs must be translated exactly once")
	for _, r := range receipts {
		assert.Equal(t, receipts[0], r)
	}

	_, err := source.ReceiptOf(id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestPartialRecordSource_Incorporate(t *testing.T) {
	source := recordcache.NewPartialRecordSource()
	assert.Empty(t, source.IdentifiedReceipts())

	id := unittest.TransactionIDFixture(1000)
	before := source.IdentifiedReceipts()

	source.Incorporate(unittest.RecordFixture(id, ledger.StatusSuccess))
	source.Incorporate(unittest.RecordFixture(unittest.ChildIDFixture(id, 1), ledger.StatusSuccess))

	assert.Empty(t, before)
	assert.Len(t, source.IdentifiedReceipts(), 2)
	assert.Len(t, source.ChildReceiptsOf(id), 1)
}

func TestDefaultTranslator(t *testing.T) {
	parent := unittest.TransactionIDFixture(1000)
	child := unittest.TransactionIDFixture(1000, unittest.WithPayer(parent.Payer), unittest.WithNonce(2))

	output := unittest.ExecutionOutputFixture(child, ledger.StatusSuccess)
	parentTimestamp := ledger.Timestamp{Seconds: 1001}
	output.ParentConsensusTimestamp = &parentTimestamp
	output.Memo = "memo"

	expected := unittest.RecordFixture(child, ledger.StatusSuccess,
		unittest.WithConsensusTimestamp(output.ConsensusTimestamp),
		unittest.WithParentConsensusTimestamp(parentTimestamp),
	)
	expected.TransactionFee = output.ChargedFee
	expected.Memo = "memo"

	record := recordcache.DefaultTranslator.Translate(output)
	assert.Equal(t, expected, record)

	t.Run("parent timestamp is copied", func(t *testing.T) {
		parentTimestamp.Seconds = 2000
		require.NotNil(t, record.ParentConsensusTimestamp)
		assert.Equal(t, int64(1001), record.ParentConsensusTimestamp.Seconds)
	})

	t.Run("scheduled id is kept", func(t *testing.T) {
		scheduled := unittest.TransactionIDFixture(1000, unittest.WithScheduled())
		record := recordcache.DefaultTranslator.Translate(unittest.ExecutionOutputFixture(scheduled, ledger.StatusSuccess))
		assert.True(t, record.TransactionID.Scheduled)
		assert.Nil(t, record.ParentConsensusTimestamp)
	})
}
