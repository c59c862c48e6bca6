// FILE: symbol.go
// Package main – Per-symbol state (Symbol) and the Engine aggregate.
//
// Ground truth: original_source/include/common.h's symbol_data, plus
// spec §9's guidance to encapsulate the process-wide singletons (symbol
// table, ingress ring, barriers, current-minute stamp) in one constructed
// value rather than literal globals.
package main

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Symbol owns everything specific to one tracked trading pair: its
// sliding window, its VWAP history, and its log sinks. Created once at
// startup, destroyed at shutdown; never reallocated.
type Symbol struct {
	Name       string
	Window     *SlidingWindow
	VwapHist   *VwapHistory
	TradeLog   *AppendFile
	VwapLog    *AppendFile
	CorrLog    *AppendFile
}

// Engine is the single process-wide aggregate: the symbol table, the
// shared ingress ring, the two compute barriers, the current-minute
// stamp, and the shared loggers/metrics. It is constructed once in
// main() and passed by pointer to every goroutine — there are no
// package-level globals holding mutable engine state (spec §9).
type Engine struct {
	cfg     Config
	symbols []*Symbol

	ring *IngressRing

	// two-phase barrier coordinating the VWAP and correlation workers
	// with the scheduler (spec §4.C8).
	barrier *twoPhaseBarrier

	// currentMinuteMS is written by the scheduler strictly before it
	// releases compute_start, and read by workers only after that
	// release; the barrier provides the happens-before edge, so plain
	// int64 storage (no atomic needed) would already be safe, but we use
	// atomic for defense against future misuse of the field outside the
	// barrier-protected window.
	currentMinuteMS atomic.Int64

	// lastDroppedTotal is the ring.DroppedCount() value as of the previous
	// scheduler tick, used to report the per-tick delta to the cumulative
	// tradesDropped counter (only the scheduler goroutine touches this).
	lastDroppedTotal uint64

	latencyLog *AppendFile
	sysLog     *AppendFile
	schedLog   *AppendFile

	metrics *engineMetrics

	decoder *okxDecoder

	shutdownOnce sync.Once
}

// NewEngine constructs the engine's fixed-capacity state: all ring
// buffers are allocated up front, matching spec §3's "no growth, no
// reallocation during steady state" lifecycle rule.
func NewEngine(cfg Config, loggers *loggerSet, metrics *engineMetrics) (*Engine, error) {
	e := &Engine{
		cfg:     cfg,
		ring:    NewIngressRing(cfg.RingCapacity),
		barrier: newTwoPhaseBarrier(3), // coordinator + vwap worker + correlation worker
		metrics: metrics,
		decoder: newOKXDecoder(cfg.Symbols),
	}

	for _, name := range cfg.Symbols {
		tradeLog, err := loggers.tradeLog(name)
		if err != nil {
			return nil, fmt.Errorf("trade log for %s: %w", name, err)
		}
		vwapLog, err := loggers.vwapLog(name)
		if err != nil {
			return nil, fmt.Errorf("vwap log for %s: %w", name, err)
		}
		corrLog, err := loggers.correlationLog(name)
		if err != nil {
			return nil, fmt.Errorf("correlation log for %s: %w", name, err)
		}

		e.symbols = append(e.symbols, &Symbol{
			Name:     name,
			Window:   NewSlidingWindow(cfg.WindowCapacity, cfg.WindowDurationMS()),
			VwapHist: NewVwapHistory(cfg.HistoryCapacity()),
			TradeLog: tradeLog,
			VwapLog:  vwapLog,
			CorrLog:  corrLog,
		})
	}

	latencyLog, err := loggers.latencyLog()
	if err != nil {
		return nil, fmt.Errorf("latency log: %w", err)
	}
	sysLog, err := loggers.systemLog()
	if err != nil {
		return nil, fmt.Errorf("system log: %w", err)
	}
	schedLog, err := loggers.schedulerLog()
	if err != nil {
		return nil, fmt.Errorf("scheduler log: %w", err)
	}
	e.latencyLog = latencyLog
	e.sysLog = sysLog
	e.schedLog = schedLog

	return e, nil
}

// Close releases all file handles owned by the engine. Safe to call once.
func (e *Engine) Close() {
	e.shutdownOnce.Do(func() {
		for _, s := range e.symbols {
			_ = s.TradeLog.Close()
			_ = s.VwapLog.Close()
			_ = s.CorrLog.Close()
		}
		_ = e.latencyLog.Close()
		_ = e.sysLog.Close()
		_ = e.schedLog.Close()
	})
}
