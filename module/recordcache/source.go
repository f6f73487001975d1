package recordcache

import (
	"errors"
	"fmt"

	"github.com/ledgerd/recordcache/model/ledger"
)

// ErrUnknownTransaction is returned by a RecordSource asked about a transaction it holds
// no receipt for.
var ErrUnknownTransaction = errors.New("transaction not part of record source")

// RecordSource holds the outcomes produced by handling one user transaction, including
// any child or preceding transactions. The backing data is immutable once the source
// has been handed to the cache, apart from PartialRecordSource which only grows.
//
// Implementations are compared by identity and must therefore be pointer types.
type RecordSource interface {
	// IdentifiedReceipts returns every receipt of the source tagged with its
	// transaction id, in source order.
	IdentifiedReceipts() []ledger.IdentifiedReceipt

	// ForEachTxnRecord visits every record of the source in source order.
	ForEachTxnRecord(visit func(record *ledger.TransactionRecord))

	// ReceiptOf returns the receipt of the first record with exactly the given id.
	// Expected errors during normal operations:
	//   - ErrUnknownTransaction if no record of the source has the id
	ReceiptOf(id ledger.TransactionID) (ledger.TransactionReceipt, error)

	// ChildReceiptsOf returns the receipts of every record that is a child of id.
	ChildReceiptsOf(id ledger.TransactionID) []ledger.TransactionReceipt
}

// The helpers below implement the queries over an ordered list of records, shared by
// all variants.

func identifiedReceiptsOf(records []*ledger.TransactionRecord) []ledger.IdentifiedReceipt {
	receipts := make([]ledger.IdentifiedReceipt, 0, len(records))
	for _, record := range records {
		receipts = append(receipts, ledger.IdentifiedReceipt{
			TransactionID: record.TransactionID,
			Receipt:       record.Receipt,
		})
	}
	return receipts
}

func receiptIn(records []*ledger.TransactionRecord, id ledger.TransactionID) (ledger.TransactionReceipt, error) {
	for _, record := range records {
		if record.TransactionID == id {
			return record.Receipt, nil
		}
	}
	return ledger.TransactionReceipt{}, fmt.Errorf("no receipt for %s: %w", id, ErrUnknownTransaction)
}

func childReceiptsIn(records []*ledger.TransactionRecord, id ledger.TransactionID) []ledger.TransactionReceipt {
	var receipts []ledger.TransactionReceipt
	for _, record := range records {
		if record.TransactionID.IsChildOf(id) {
			receipts = append(receipts, record.Receipt)
		}
	}
	return receipts
}
