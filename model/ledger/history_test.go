package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerd/recordcache/model/ledger"
)

func record(id ledger.TransactionID, status ledger.Status) *ledger.TransactionRecord {
	return &ledger.TransactionRecord{
		TransactionID: id,
		Receipt:       ledger.TransactionReceipt{Status: status},
	}
}

func TestHistory_Empty(t *testing.T) {
	assert.True(t, ledger.EmptyHistory.IsEmpty())
	assert.Nil(t, ledger.EmptyHistory.UserTransactionRecord())
	assert.Equal(t, ledger.PendingReceipt, ledger.EmptyHistory.UserTransactionReceipt())
	assert.Empty(t, ledger.EmptyHistory.OrderedRecords())
}

func TestHistory_OrderedRecords(t *testing.T) {
	user := record(txID(100, 1000, 0, false), ledger.StatusSuccess)
	duplicate := record(txID(100, 1000, 0, false), ledger.StatusDuplicateTransaction)
	child1 := record(txID(100, 1000, 1, false), ledger.StatusSuccess)
	child2 := record(txID(100, 1000, 2, false), ledger.StatusSuccess)

	history := &ledger.History{
		NodeIDs:          []uint64{3, 4},
		DuplicateRecords: []*ledger.TransactionRecord{user, duplicate},
		ChildRecords:     []*ledger.TransactionRecord{child1, child2},
	}

	assert.Same(t, user, history.UserTransactionRecord())
	assert.Equal(t, ledger.TransactionReceipt{Status: ledger.StatusSuccess}, history.UserTransactionReceipt())
	assert.Equal(t, []*ledger.TransactionRecord{user, child1, child2, duplicate}, history.OrderedRecords())
	assert.True(t, history.HasNode(4))
	assert.False(t, history.HasNode(5))

	t.Run("children only", func(t *testing.T) {
		h := &ledger.History{ChildRecords: []*ledger.TransactionRecord{child1}}
		assert.Nil(t, h.UserTransactionRecord())
		assert.Equal(t, []*ledger.TransactionRecord{child1}, h.OrderedRecords())
	})
}

func TestRoundReceipts_LatestValidStart(t *testing.T) {
	round := ledger.NewRoundReceipts([]ledger.TransactionReceiptEntry{
		{NodeID: 3, TransactionID: txID(100, 1000, 0, false), Status: ledger.StatusSuccess},
		{NodeID: 3, TransactionID: txID(101, 1020, 0, false), Status: ledger.StatusSuccess},
		{NodeID: 4, TransactionID: txID(102, 990, 0, false), Status: ledger.StatusSuccess},
	})
	assert.Equal(t, ledger.Timestamp{Seconds: 1020}, round.LatestValidStart())
	assert.False(t, round.IsEmpty())
	assert.True(t, (&ledger.RoundReceipts{}).IsEmpty())
}

func TestAddressBook(t *testing.T) {
	book, err := ledger.ParseAddressBook(map[uint64]string{3: "0.0.3", 4: "0.0.4"})
	assert.NoError(t, err)

	account, ok := book.AccountIDOfNode(3)
	assert.True(t, ok)
	assert.Equal(t, ledger.NewAccountID(3), account)

	_, ok = book.AccountIDOfNode(5)
	assert.False(t, ok)

	book.Set(5, ledger.NewAccountID(55))
	assert.Equal(t, []uint64{3, 4, 5}, book.NodeIDs())

	_, err = ledger.ParseAddressBook(map[uint64]string{1: "bad"})
	assert.Error(t, err)
}
