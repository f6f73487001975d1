package unittest

import (
	"math/rand"

	"go.uber.org/atomic"

	"github.com/ledgerd/recordcache/model/ledger"
)

var accountCounter = atomic.NewUint64(1000)

// AccountIDFixture returns a fresh account 0.0.n.
func AccountIDFixture() ledger.AccountID {
	return ledger.NewAccountID(accountCounter.Add(1))
}

// TimestampFixture returns the timestamp seconds.0.
func TimestampFixture(seconds int64) ledger.Timestamp {
	return ledger.Timestamp{Seconds: seconds}
}

// TransactionIDFixture returns a base transaction id of a fresh payer starting at
// validStart seconds.
func TransactionIDFixture(validStart int64, opts ...func(*ledger.TransactionID)) ledger.TransactionID {
	id := ledger.TransactionID{
		Payer:      AccountIDFixture(),
		ValidStart: TimestampFixture(validStart),
	}
	for _, apply := range opts {
		apply(&id)
	}
	return id
}

func WithPayer(payer ledger.AccountID) func(*ledger.TransactionID) {
	return func(id *ledger.TransactionID) {
		id.Payer = payer
	}
}

func WithNonce(nonce uint32) func(*ledger.TransactionID) {
	return func(id *ledger.TransactionID) {
		id.Nonce = nonce
	}
}

func WithScheduled() func(*ledger.TransactionID) {
	return func(id *ledger.TransactionID) {
		id.Scheduled = true
	}
}

// ChildIDFixture returns the child of parent with the given nonce.
func ChildIDFixture(parent ledger.TransactionID, nonce uint32) ledger.TransactionID {
	child := parent
	child.Nonce = nonce
	return child
}

// RecordFixture returns a record for id with the given status, reaching consensus one
// second after its valid start.
func RecordFixture(id ledger.TransactionID, status ledger.Status, opts ...func(*ledger.TransactionRecord)) *ledger.TransactionRecord {
	record := &ledger.TransactionRecord{
		TransactionID:      id,
		Receipt:            ledger.TransactionReceipt{Status: status},
		ConsensusTimestamp: ledger.Timestamp{Seconds: id.ValidStart.Seconds + 1, Nanos: int32(id.Nonce)},
		TransactionFee:     uint64(rand.Intn(1000)),
	}
	for _, apply := range opts {
		apply(record)
	}
	return record
}

func WithConsensusTimestamp(ts ledger.Timestamp) func(*ledger.TransactionRecord) {
	return func(record *ledger.TransactionRecord) {
		record.ConsensusTimestamp = ts
	}
}

func WithParentConsensusTimestamp(ts ledger.Timestamp) func(*ledger.TransactionRecord) {
	return func(record *ledger.TransactionRecord) {
		record.ParentConsensusTimestamp = &ts
	}
}

// ExecutionOutputFixture returns an execution output for id with the given status.
func ExecutionOutputFixture(id ledger.TransactionID, status ledger.Status) ledger.ExecutionOutput {
	return ledger.ExecutionOutput{
		TransactionID:      id,
		Status:             status,
		ConsensusTimestamp: ledger.Timestamp{Seconds: id.ValidStart.Seconds + 1, Nanos: int32(id.Nonce)},
		ChargedFee:         uint64(rand.Intn(1000)),
		Events:             [][]byte{{byte(status)}},
	}
}

// ReceiptEntryFixture returns a receipt entry for id submitted by nodeID.
func ReceiptEntryFixture(nodeID uint64, id ledger.TransactionID, status ledger.Status) ledger.TransactionReceiptEntry {
	return ledger.TransactionReceiptEntry{
		NodeID:        nodeID,
		TransactionID: id,
		Status:        status,
	}
}

// RoundReceiptsFixture returns a round of n successful receipts submitted by node 3,
// with valid starts from validStart onwards.
func RoundReceiptsFixture(n int, validStart int64) *ledger.RoundReceipts {
	entries := make([]ledger.TransactionReceiptEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, ReceiptEntryFixture(3, TransactionIDFixture(validStart+int64(i)), ledger.StatusSuccess))
	}
	return ledger.NewRoundReceipts(entries)
}
