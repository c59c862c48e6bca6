// FILE: sliding_window.go
// Package main – Per-symbol sliding trade window with incremental VWAP (C3).
//
// Ground truth: original_source/src/data/sliding_window.c. A circular
// buffer of ProcessedTrade keyed by arrival order, with running sums
// sum_pv/sum_v kept up to date on every add so snapshot_vwap is O(1).
//
// Pruning always uses the *newly added* trade's timestamp as "now" (not
// wall-clock), which anchors the window to the newest trade seen so far
// and keeps it monotonic under clock skew or late, out-of-order prints —
// see AddTrade's step 1.
package main

import (
	"math"
	"sync"
)

// ProcessedTrade is a trade retained inside a SlidingWindow. Never shared
// outside the window it lives in.
type ProcessedTrade struct {
	TradeTSMS int64
	Price     float64
	Size      float64
}

// SlidingWindow is a fixed-capacity ring of ProcessedTrade covering the
// most recent W milliseconds, with running sums for O(1) VWAP.
type SlidingWindow struct {
	mu sync.Mutex

	buf      []ProcessedTrade
	capacity int // K
	head     int
	tail     int
	size     int

	sumPV float64 // Σ price*size
	sumV  float64 // Σ size

	windowMS int64 // W
}

// NewSlidingWindow allocates a window of the given capacity covering
// windowMS milliseconds.
func NewSlidingWindow(capacity int, windowMS int64) *SlidingWindow {
	return &SlidingWindow{
		buf:      make([]ProcessedTrade, capacity),
		capacity: capacity,
		windowMS: windowMS,
	}
}

// AddTrade appends a trade, atomically w.r.t. concurrent Snapshot calls.
// Algorithm, in order: (1) prune entries older than tsMS-W using the new
// trade's timestamp as the reference "now"; (2) evict the oldest entry if
// the buffer is already full; (3) append at tail and update running sums.
func (w *SlidingWindow) AddTrade(tsMS int64, price, size float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	expiryCutoff := tsMS - w.windowMS
	for w.size > 0 && w.buf[w.head].TradeTSMS < expiryCutoff {
		w.evictHeadLocked()
	}

	if w.size == w.capacity {
		w.evictHeadLocked()
	}

	w.buf[w.tail] = ProcessedTrade{TradeTSMS: tsMS, Price: price, Size: size}
	w.tail = (w.tail + 1) % w.capacity
	w.size++
	w.sumPV += price * size
	w.sumV += size
}

func (w *SlidingWindow) evictHeadLocked() {
	e := w.buf[w.head]
	w.sumPV -= e.Price * e.Size
	w.sumV -= e.Size
	w.head = (w.head + 1) % w.capacity
	w.size--
}

// SnapshotVWAP returns sum_pv/sum_v, or NaN if the window holds no
// volume. O(1).
func (w *SlidingWindow) SnapshotVWAP() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sumV > 0 {
		return w.sumPV / w.sumV
	}
	return math.NaN()
}

// Size reports the current live entry count (test/debug use).
func (w *SlidingWindow) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// recomputeSums walks all live entries and recomputes sum_pv/sum_v
// from scratch. Used only by tests to verify the running-sum scheme
// against a naive recompute within the documented FP tolerance (spec §8
// invariant 2); never called on the hot path.
func (w *SlidingWindow) recomputeSums() (sumPV, sumV float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := w.head
	for i := 0; i < w.size; i++ {
		e := w.buf[idx]
		sumPV += e.Price * e.Size
		sumV += e.Size
		idx = (idx + 1) % w.capacity
	}
	return sumPV, sumV
}

// oldestTimestamp returns the trade_ts_ms of the oldest live entry and
// whether one exists. Test-only helper for invariant 2's "every live
// entry satisfies trade_ts_ms >= newest - W" check.
func (w *SlidingWindow) oldestTimestamp() (int64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.size == 0 {
		return 0, false
	}
	return w.buf[w.head].TradeTSMS, true
}
