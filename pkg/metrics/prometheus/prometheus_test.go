package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector("bankapi_test")
	require.NoError(t, c.Register(registry))

	c.RecordTransaction("deposit", "completed", 3*time.Millisecond)
	c.RecordTransaction("deposit", "completed", time.Millisecond)
	c.RecordTransaction("withdrawal", "failed", time.Millisecond)
	c.RecordBalanceUpdate(true)
	c.RecordBalanceUpdate(false)
	c.RecordAuth("login", false)

	assert.InDelta(t, 2, testutil.ToFloat64(c.transactions.WithLabelValues("deposit", "completed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.transactions.WithLabelValues("withdrawal", "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.balanceUpdates.WithLabelValues("failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.authAttempts.WithLabelValues("login", "failure")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.transactionLatency))
}

func TestCollector_RegisterTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, NewCollector("dup").Register(registry))
	assert.Error(t, NewCollector("dup").Register(registry))
}
