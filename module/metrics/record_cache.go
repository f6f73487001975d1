package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
)

type RecordCacheCollector struct {
	sourcesAdded          prometheus.Counter
	receiptsAdded         prometheus.Counter
	duplicateChecks       *prometheus.CounterVec
	roundEntries          prometheus.Histogram
	roundsPurged          prometheus.Counter
	entriesPurged         prometheus.Counter
	histories             prometheus.Gauge
	payers                prometheus.Gauge
	rebuildDuration       prometheus.Histogram
	rebuildRounds         prometheus.Gauge
	rebuildEntries        prometheus.Gauge
	recordsQueryTruncated prometheus.Counter
	dedupPruned           prometheus.Counter
	dedupSize             prometheus.Gauge
}

var _ module.RecordCacheMetrics = (*RecordCacheCollector)(nil)
var _ module.DeduplicationMetrics = (*RecordCacheCollector)(nil)

func NewRecordCacheCollector(registerer prometheus.Registerer) *RecordCacheCollector {
	factory := promauto.With(registerer)

	return &RecordCacheCollector{
		sourcesAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "record_sources_added_total",
			Help:      "number of record sources ingested by the record cache",
		}),
		receiptsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "receipts_added_total",
			Help:      "number of receipts added to round buffers",
		}),
		duplicateChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "duplicate_checks_total",
			Help:      "number of duplicate classifications by result",
		}, []string{LabelResult}),
		roundEntries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "round_receipt_entries",
			Buckets:   []float64{1, 10, 100, 1000, 10000},
			Help:      "number of receipt entries persisted per committed round",
		}),
		roundsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "rounds_purged_total",
			Help:      "number of rounds removed from the receipt log after expiring",
		}),
		entriesPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "entries_purged_total",
			Help:      "number of receipt entries removed from the receipt log after expiring",
		}),
		histories: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "histories",
			Help:      "number of base transactions with a history",
		}),
		payers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "payers",
			Help:      "number of accounts in the payer index",
		}),
		rebuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "rebuild_duration_seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			Help:      "time taken to rebuild the record cache from the receipt log",
		}),
		rebuildRounds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "rebuild_rounds",
			Help:      "number of rounds replayed by the last rebuild",
		}),
		rebuildEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "rebuild_entries",
			Help:      "number of receipt entries replayed by the last rebuild",
		}),
		recordsQueryTruncated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemRecordCache,
			Name:      "records_query_truncated_total",
			Help:      "number of by-account record queries cut at the configured maximum",
		}),
		dedupPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemDeduplication,
			Name:      "entries_pruned_total",
			Help:      "number of screened transactions pruned after leaving the window",
		}),
		dedupSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceLedger,
			Subsystem: subsystemDeduplication,
			Name:      "entries",
			Help:      "number of screened transactions inside the window",
		}),
	}
}

func (rc *RecordCacheCollector) RecordSourceAdded(receipts int) {
	rc.sourcesAdded.Inc()
	rc.receiptsAdded.Add(float64(receipts))
}

func (rc *RecordCacheCollector) DuplicateChecked(result ledger.DuplicateCheckResult) {
	rc.duplicateChecks.WithLabelValues(result.String()).Inc()
}

func (rc *RecordCacheCollector) RoundReceiptsCommitted(entries int) {
	rc.roundEntries.Observe(float64(entries))
}

func (rc *RecordCacheCollector) RoundsPurged(rounds int, entries int) {
	rc.roundsPurged.Add(float64(rounds))
	rc.entriesPurged.Add(float64(entries))
}

func (rc *RecordCacheCollector) CacheSize(histories int, payers int) {
	rc.histories.Set(float64(histories))
	rc.payers.Set(float64(payers))
}

func (rc *RecordCacheCollector) CacheRebuilt(rounds int, entries int, duration time.Duration) {
	rc.rebuildDuration.Observe(duration.Seconds())
	rc.rebuildRounds.Set(float64(rounds))
	rc.rebuildEntries.Set(float64(entries))
}

func (rc *RecordCacheCollector) RecordsQueryTruncated() {
	rc.recordsQueryTruncated.Inc()
}

func (rc *RecordCacheCollector) DeduplicationEntriesPruned(count int) {
	rc.dedupPruned.Add(float64(count))
}

func (rc *RecordCacheCollector) DeduplicationCacheSize(size int) {
	rc.dedupSize.Set(float64(size))
}
