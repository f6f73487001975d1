package metrics

import (
	"time"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
)

type NoopCollector struct{}

var _ module.RecordCacheMetrics = (*NoopCollector)(nil)
var _ module.DeduplicationMetrics = (*NoopCollector)(nil)
var _ module.ReceiptLogMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) RecordSourceAdded(receipts int)                               {}
func (nc *NoopCollector) DuplicateChecked(result ledger.DuplicateCheckResult)          {}
func (nc *NoopCollector) RoundReceiptsCommitted(entries int)                           {}
func (nc *NoopCollector) RoundsPurged(rounds int, entries int)                         {}
func (nc *NoopCollector) CacheSize(histories int, payers int)                          {}
func (nc *NoopCollector) CacheRebuilt(rounds int, entries int, duration time.Duration) {}
func (nc *NoopCollector) RecordsQueryTruncated()                                       {}
func (nc *NoopCollector) DeduplicationEntriesPruned(count int)                         {}
func (nc *NoopCollector) DeduplicationCacheSize(size int)                              {}
func (nc *NoopCollector) ReceiptLogOperation(op string, duration time.Duration)        {}
func (nc *NoopCollector) ReceiptLogRounds(rounds uint64)                               {}
