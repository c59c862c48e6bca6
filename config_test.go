package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryCapacityIsPointsPlusMaxLag(t *testing.T) {
	cfg := Config{CorrelationPoints: 8, MaxLagMinutes: 60}
	assert.Equal(t, 68, cfg.HistoryCapacity())
}

func TestWindowDurationMSConvertsMinutes(t *testing.T) {
	cfg := Config{WindowMinutes: 15}
	assert.Equal(t, int64(15*60*1000), cfg.WindowDurationMS())
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	os.Setenv("SYMBOLS", "BTC-USDT,ETH-USDT")
	os.Setenv("RING_CAPACITY", "512")
	defer os.Unsetenv("SYMBOLS")
	defer os.Unsetenv("RING_CAPACITY")

	cfg := loadConfig()
	assert.Equal(t, []string{"BTC-USDT", "ETH-USDT"}, cfg.Symbols)
	assert.Equal(t, 512, cfg.RingCapacity)
}

func TestApplyOverlayOnlyTouchesNonZeroFields(t *testing.T) {
	cfg := Config{RingCapacity: 10, DataDir: "data"}
	applyOverlay(&cfg, yamlOverlay{RingCapacity: 0, DataDir: "custom"})
	assert.Equal(t, 10, cfg.RingCapacity, "zero overlay value must not override default")
	assert.Equal(t, "custom", cfg.DataDir)
}
