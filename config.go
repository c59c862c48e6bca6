// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// This file defines the Config struct (every knob the processor needs) and
// a loader that layers three sources, lowest to highest precedence:
//   1) the design defaults from spec (N=8, Q=1024, K=50000, ...)
//   2) an optional YAML file (CONFIG_FILE env var) for the symbol universe
//      and tunables, so an operator can retarget symbols without recompiling
//   3) environment variables (see env.go), which always win
//
// Typical flow (see main.go):
//   loadProcEnv()
//   cfg := loadConfig()
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime knobs for the trade-stream processor.
type Config struct {
	// Tracked universe
	Symbols []string // e.g. ["BTC-USDT", "ADA-USDT", ...]

	// Ring / window sizing (design values per spec; see GLOSSARY)
	RingCapacity      int // Q
	WindowCapacity    int // K, per symbol
	WindowMinutes     int // W_MIN
	CorrelationPoints int // P
	MaxLagMinutes     int // MAX_LAG_MIN
	RawPayloadCap     int // P (bytes), inline raw-message buffer capacity

	// Durability
	FsyncPerWrite bool

	// Ops
	DataDir     string
	MetricsPort int
	OKXWSURL    string
}

// HistoryCapacity returns H = CorrelationPoints + MaxLagMinutes, the VWAP
// history ring capacity per symbol (spec §3/§4.C4).
func (c Config) HistoryCapacity() int {
	return c.CorrelationPoints + c.MaxLagMinutes
}

// WindowDurationMS returns W in milliseconds.
func (c Config) WindowDurationMS() int64 {
	return int64(c.WindowMinutes) * 60 * 1000
}

// yamlOverlay mirrors the subset of Config an operator may want to override
// from a file instead of (or in addition to) the environment.
type yamlOverlay struct {
	Symbols           []string `yaml:"symbols"`
	RingCapacity      int      `yaml:"ring_capacity"`
	WindowCapacity    int      `yaml:"window_capacity"`
	WindowMinutes     int      `yaml:"window_minutes"`
	CorrelationPoints int      `yaml:"correlation_points"`
	MaxLagMinutes     int      `yaml:"max_lag_minutes"`
	RawPayloadCap     int      `yaml:"raw_payload_cap"`
	DataDir           string   `yaml:"data_dir"`
	MetricsPort       int      `yaml:"metrics_port"`
	OKXWSURL          string   `yaml:"okx_ws_url"`
}

func defaultSymbols() []string {
	return []string{
		"BTC-USDT", "ADA-USDT", "ETH-USDT", "DOGE-USDT",
		"XRP-USDT", "SOL-USDT", "LTC-USDT", "BNB-USDT",
	}
}

// loadConfig builds a Config from design defaults, an optional YAML
// overlay (CONFIG_FILE), and environment variables, in that precedence
// order (env wins).
func loadConfig() Config {
	cfg := Config{
		Symbols:           defaultSymbols(),
		RingCapacity:      1024,
		WindowCapacity:    50000,
		WindowMinutes:     15,
		CorrelationPoints: 8,
		MaxLagMinutes:     60,
		RawPayloadCap:     1024,
		FsyncPerWrite:     false,
		DataDir:           "data",
		MetricsPort:       8090,
		OKXWSURL:          "wss://ws.okx.com:8443/ws/v5/public",
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if ov, err := loadYAMLOverlay(path); err != nil {
			fmt.Fprintf(os.Stderr, "[BOOT] WARNING: config file %s: %v (using defaults)\n", path, err)
		} else {
			applyOverlay(&cfg, ov)
		}
	}

	cfg.Symbols = getEnvStringSlice("SYMBOLS", cfg.Symbols)
	cfg.RingCapacity = getEnvInt("RING_CAPACITY", cfg.RingCapacity)
	cfg.WindowCapacity = getEnvInt("WINDOW_CAPACITY", cfg.WindowCapacity)
	cfg.WindowMinutes = getEnvInt("WINDOW_MINUTES", cfg.WindowMinutes)
	cfg.CorrelationPoints = getEnvInt("CORRELATION_POINTS", cfg.CorrelationPoints)
	cfg.MaxLagMinutes = getEnvInt("MAX_LAG_MINUTES", cfg.MaxLagMinutes)
	cfg.RawPayloadCap = getEnvInt("RAW_PAYLOAD_CAP", cfg.RawPayloadCap)
	cfg.FsyncPerWrite = getEnvBool("FSYNC_PER_WRITE", cfg.FsyncPerWrite)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.MetricsPort = getEnvInt("METRICS_PORT", cfg.MetricsPort)
	cfg.OKXWSURL = getEnv("OKX_WS_URL", cfg.OKXWSURL)

	return cfg
}

func loadYAMLOverlay(path string) (yamlOverlay, error) {
	var ov yamlOverlay
	data, err := os.ReadFile(path)
	if err != nil {
		return ov, fmt.Errorf("read: %w", err)
	}
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return ov, fmt.Errorf("parse: %w", err)
	}
	return ov, nil
}

func applyOverlay(cfg *Config, ov yamlOverlay) {
	if len(ov.Symbols) > 0 {
		cfg.Symbols = ov.Symbols
	}
	if ov.RingCapacity > 0 {
		cfg.RingCapacity = ov.RingCapacity
	}
	if ov.WindowCapacity > 0 {
		cfg.WindowCapacity = ov.WindowCapacity
	}
	if ov.WindowMinutes > 0 {
		cfg.WindowMinutes = ov.WindowMinutes
	}
	if ov.CorrelationPoints > 0 {
		cfg.CorrelationPoints = ov.CorrelationPoints
	}
	if ov.MaxLagMinutes > 0 {
		cfg.MaxLagMinutes = ov.MaxLagMinutes
	}
	if ov.RawPayloadCap > 0 {
		cfg.RawPayloadCap = ov.RawPayloadCap
	}
	if ov.DataDir != "" {
		cfg.DataDir = ov.DataDir
	}
	if ov.MetricsPort > 0 {
		cfg.MetricsPort = ov.MetricsPort
	}
	if ov.OKXWSURL != "" {
		cfg.OKXWSURL = ov.OKXWSURL
	}
}

