package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ledgerd/recordcache/module"
)

type ReceiptLogCollector struct {
	operations *prometheus.HistogramVec
	rounds     prometheus.Gauge
}

var _ module.ReceiptLogMetrics = (*ReceiptLogCollector)(nil)

func NewReceiptLogCollector(registerer prometheus.Registerer, backend string) *ReceiptLogCollector {
	factory := promauto.With(registerer)

	return &ReceiptLogCollector{
		operations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespaceLedger,
			Subsystem:   subsystemReceiptLog,
			Name:        "operation_duration_seconds",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
			Help:        "duration of receipt log operations",
			ConstLabels: prometheus.Labels{LabelBackend: backend},
		}, []string{LabelOp}),
		rounds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespaceLedger,
			Subsystem:   subsystemReceiptLog,
			Name:        "rounds",
			Help:        "number of committed rounds held by the receipt log",
			ConstLabels: prometheus.Labels{LabelBackend: backend},
		}),
	}
}

func (rl *ReceiptLogCollector) ReceiptLogOperation(op string, duration time.Duration) {
	rl.operations.WithLabelValues(op).Observe(duration.Seconds())
}

func (rl *ReceiptLogCollector) ReceiptLogRounds(rounds uint64) {
	rl.rounds.Set(float64(rounds))
}
