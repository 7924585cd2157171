// Package metrics defines the collector the services report to. The HTTP
// layer exports the Prometheus implementation on /metrics.
package metrics

import "time"

// Collector receives business metrics from the services.
type Collector interface {
	// RecordTransaction records a processed transaction with its final status.
	RecordTransaction(txType, status string, duration time.Duration)
	// RecordBalanceUpdate records a ledger write attempt.
	RecordBalanceUpdate(success bool)
	// RecordAuth records an authentication outcome such as "login" or
	// "refresh" with whether it succeeded.
	RecordAuth(operation string, success bool)
}

// NoOpCollector is a no-op implementation of Collector.
// It's used when metrics are disabled and in tests.
type NoOpCollector struct{}

// RecordTransaction does nothing.
func (NoOpCollector) RecordTransaction(string, string, time.Duration) {}

// RecordBalanceUpdate does nothing.
func (NoOpCollector) RecordBalanceUpdate(bool) {}

// RecordAuth does nothing.
func (NoOpCollector) RecordAuth(string, bool) {}

var _ Collector = NoOpCollector{}
