package prometheus

import (
	"time"

	"github.com/amirasaad/bankapi/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements metrics.Collector for Prometheus.
type Collector struct {
	transactions       *prometheus.CounterVec
	transactionLatency *prometheus.HistogramVec
	balanceUpdates     *prometheus.CounterVec
	authAttempts       *prometheus.CounterVec
}

// NewCollector creates a new Prometheus collector. Call Register before use.
func NewCollector(namespace string) *Collector {
	return &Collector{
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total number of processed transactions per type and final status",
			},
			[]string{"type", "status"},
		),
		transactionLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Transaction processing latency",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"type"},
		),
		balanceUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_updates_total",
				Help:      "Total number of ledger balance updates",
			},
			[]string{"result"},
		),
		authAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of authentication attempts per operation",
			},
			[]string{"operation", "result"},
		),
	}
}

// Register registers all metrics with the given Prometheus registerer.
func (c *Collector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.transactions,
		c.transactionLatency,
		c.balanceUpdates,
		c.authAttempts,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordTransaction implements metrics.Collector.
func (c *Collector) RecordTransaction(txType, status string, duration time.Duration) {
	c.transactions.WithLabelValues(txType, status).Inc()
	c.transactionLatency.WithLabelValues(txType).Observe(duration.Seconds())
}

// RecordBalanceUpdate implements metrics.Collector.
func (c *Collector) RecordBalanceUpdate(success bool) {
	c.balanceUpdates.WithLabelValues(result(success)).Inc()
}

// RecordAuth implements metrics.Collector.
func (c *Collector) RecordAuth(operation string, success bool) {
	c.authAttempts.WithLabelValues(operation, result(success)).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

var _ metrics.Collector = (*Collector)(nil)
