package initializer

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/bankapi/infra/cache"
	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/metrics"
	metricsprom "github.com/amirasaad/bankapi/pkg/metrics/prometheus"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, &config.Log{Format: "json", Level: int(log.InfoLevel), Prefix: "[bankapi]"}))

	logger.Debug("hidden")
	logger.Info("Account opened", "accountID", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "Account opened", entry["msg"])
	assert.Equal(t, "abc", entry["accountID"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogHandler_DefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, nil))
	logger.Info("hello", "userID", 7)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "userID")
}

func TestInitMetrics(t *testing.T) {
	collector, gatherer, err := initMetrics(&config.Metrics{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, metrics.NoOpCollector{}, collector)
	assert.Nil(t, gatherer)

	collector, gatherer, err = initMetrics(&config.Metrics{Enabled: true, Namespace: "bankapi_init"})
	require.NoError(t, err)
	require.NotNil(t, gatherer)
	assert.IsType(t, &metricsprom.Collector{}, collector)

	collector.RecordAuth("login", true)
	families, err := gatherer.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "bankapi_init_auth_attempts_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestInitRateLimitStorage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storage, err := initRateLimitStorage(&config.Redis{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStorage{}, storage)
	require.NoError(t, storage.Close())

	_, err = initRateLimitStorage(&config.Redis{URL: "not-a-redis-url"}, logger)
	assert.Error(t, err)

	// nothing listens on port 1
	storage, err = initRateLimitStorage(&config.Redis{URL: "redis://127.0.0.1:1/0"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStorage{}, storage)
	require.NoError(t, storage.Close())
}

func TestInitializeDependencies_RequiresDatabase(t *testing.T) {
	cfg := &config.App{
		Env:   "test",
		Log:   &config.Log{Format: "text", Level: int(log.FatalLevel)},
		DB:    &config.DB{},
		Redis: &config.Redis{},
	}
	deps, cleanup, err := InitializeDependencies(cfg)
	assert.Error(t, err)
	assert.Nil(t, deps)
	assert.Nil(t, cleanup)
}
