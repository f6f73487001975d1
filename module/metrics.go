package module

import (
	"time"

	"github.com/ledgerd/recordcache/model/ledger"
)

// RecordCacheMetrics tracks the ingestion, classification and expiry of transaction
// records held by the record cache.
type RecordCacheMetrics interface {
	// RecordSourceAdded is called once per ingested record source with the number of
	// receipts it contributed to the current round.
	RecordSourceAdded(receipts int)

	// DuplicateChecked tracks the outcome of a duplicate classification.
	DuplicateChecked(result ledger.DuplicateCheckResult)

	// RoundReceiptsCommitted tracks the number of receipt entries persisted for a round.
	RoundReceiptsCommitted(entries int)

	// RoundsPurged tracks the rounds (and their receipt entries) that left the window.
	RoundsPurged(rounds int, entries int)

	// CacheSize reports the number of tracked base transactions and payers.
	CacheSize(histories int, payers int)

	// CacheRebuilt tracks a rebuild from the receipt log.
	CacheRebuilt(rounds int, entries int, duration time.Duration)

	// RecordsQueryTruncated is called when a by-account query is cut at the configured maximum.
	RecordsQueryTruncated()
}

// DeduplicationMetrics tracks the size of the deduplication cache.
type DeduplicationMetrics interface {
	// DeduplicationEntriesPruned tracks entries that fell out of the window.
	DeduplicationEntriesPruned(count int)

	// DeduplicationCacheSize reports the number of screened transactions.
	DeduplicationCacheSize(size int)
}

// ReceiptLogMetrics tracks the durable receipt log backends.
type ReceiptLogMetrics interface {
	// ReceiptLogOperation tracks the duration of an operation on the log.
	ReceiptLogOperation(op string, duration time.Duration)

	// ReceiptLogRounds reports the number of committed rounds in the log.
	ReceiptLogRounds(rounds uint64)
}
