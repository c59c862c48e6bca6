// FILE: logger.go
// Package main – Append-only CSV/JSONL log sinks (C9).
//
// Ground truth: original_source/src/logging/logger.c. Each sink is a plain
// append-mode file; the header row (when the format needs one) is written
// exactly once, the first time the sink is opened for a path that does not
// already exist. FSyncPerWrite mirrors the original's fsync()-after-every-
// write option, traded off against throughput (spec §6 error-handling
// design: log-write failures are logged to stderr and otherwise ignored —
// a stalled disk must never block the hot path).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AppendFile is a single append-mode log sink guarded by its own mutex, so
// concurrent writers (e.g. multiple symbols sharing the latency log) never
// interleave partial lines.
type AppendFile struct {
	mu    sync.Mutex
	f     *os.File
	fsync bool
}

// openAppendFile opens path for appending, creating parent directories and
// the file itself if necessary. If the file did not previously exist and
// header is non-empty, header is written first.
func openAppendFile(path, header string, fsync bool) (*AppendFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	af := &AppendFile{f: f, fsync: fsync}
	if !existed && header != "" {
		if _, err := f.WriteString(header + "\n"); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write header %s: %w", path, err)
		}
	}
	return af, nil
}

// WriteLine appends one line (newline-terminated). Write failures are
// reported to stderr and swallowed, matching the original's "log a
// write failure, keep running" policy — a slow or full disk must never
// stall the producer/consumer pipeline.
func (a *AppendFile) WriteLine(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.f.WriteString(line + "\n"); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] log write failed: %v\n", err)
		return
	}
	if a.fsync {
		if err := a.f.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] log fsync failed: %v\n", err)
		}
	}
}

// Close closes the underlying file.
func (a *AppendFile) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.f.Close()
}

// loggerSet constructs every AppendFile sink the engine needs, rooted at
// one data directory, laid out the way original_source/src/config.h's
// BASE_DATA_DIR/TRADES_LOG_DIR/METRICS_DIR/... layout does.
type loggerSet struct {
	dataDir string
	fsync   bool
}

func newLoggerSet(dataDir string, fsync bool) *loggerSet {
	return &loggerSet{dataDir: dataDir, fsync: fsync}
}

func (l *loggerSet) tradeLog(symbol string) (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "trades", symbol+".jsonl")
	return openAppendFile(path, "", l.fsync)
}

func (l *loggerSet) vwapLog(symbol string) (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "metrics", "vwap", symbol+".csv")
	return openAppendFile(path, "timestamp_iso,vwap", l.fsync)
}

func (l *loggerSet) correlationLog(symbol string) (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "metrics", "correlations", symbol+".csv")
	return openAppendFile(path, "timestamp_iso,correlated_with,correlation,lag_timestamp_iso", l.fsync)
}

func (l *loggerSet) latencyLog() (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "performance", "latency.csv")
	return openAppendFile(path, "symbol_index,exchange_ts_ms,recv_ts_ms,process_ts_ms,network_latency_ms,processing_latency_ms,total_latency_ms", l.fsync)
}

func (l *loggerSet) systemLog() (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "performance", "system.csv")
	return openAppendFile(path, "timestamp_ms,cpu_percent,memory_mb", l.fsync)
}

func (l *loggerSet) schedulerLog() (*AppendFile, error) {
	path := filepath.Join(l.dataDir, "performance", "scheduler.csv")
	return openAppendFile(path, "scheduled_ms,actual_ms,drift_ms", l.fsync)
}
