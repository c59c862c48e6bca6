package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := Config{
		Symbols:           []string{"BTC-USDT"},
		RingCapacity:      4,
		WindowCapacity:    16,
		WindowMinutes:     15,
		CorrelationPoints: 4,
		MaxLagMinutes:     4,
		RawPayloadCap:     1024,
		DataDir:           t.TempDir(),
	}
	loggers := newLoggerSet(cfg.DataDir, false)
	e, err := NewEngine(cfg, loggers, newEngineMetrics())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestProcessRawTradeSkipsNonTradeMessagesSilently(t *testing.T) {
	e := newTestEngine(t)

	ack := []byte(`{"event":"subscribe","arg":{"channel":"trades","instId":"BTC-USDT"}}`)
	processRawTrade(e, RawTradeMessage{RawPayload: ack})

	require.Equal(t, float64(0), testutil.ToFloat64(e.metrics.tradesParseFailed.WithLabelValues("unknown")))
}

func TestProcessRawTradeCountsGenuineDecodeFailures(t *testing.T) {
	e := newTestEngine(t)

	malformed := []byte(`{"data":[{"instId":"BTC-USDT","px":"not-a-number","sz":"1","ts":"1"}]}`)
	processRawTrade(e, RawTradeMessage{RawPayload: malformed})

	require.Equal(t, float64(1), testutil.ToFloat64(e.metrics.tradesParseFailed.WithLabelValues("unknown")))
}

func TestProcessRawTradeFoldsValidTradeIntoWindow(t *testing.T) {
	e := newTestEngine(t)

	raw := []byte(`{"data":[{"instId":"BTC-USDT","px":"100","sz":"2","ts":"1694464949239"}]}`)
	processRawTrade(e, RawTradeMessage{RawPayload: raw, ReceiveTSMS: 1694464949300})

	require.Equal(t, 1, e.symbols[0].Window.Size())
}
