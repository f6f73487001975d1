package metrics

const (
	namespaceLedger = "ledger"
)

const (
	subsystemRecordCache   = "record_cache"
	subsystemDeduplication = "deduplication"
	subsystemReceiptLog    = "receipt_log"
)
