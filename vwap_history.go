// FILE: vwap_history.go
// Package main – Per-symbol minute-resolution VWAP history ring (C4).
//
// Ground truth: original_source/src/data/vwap_history.c. Capacity is
// H = CorrelationPoints + MaxLagMinutes — the minimum that guarantees
// every legal lag search in correlation.go can find a complete target
// window (spec §4.C4 rationale).
package main

import (
	"math"
	"sync"
)

// VwapPoint is one minute's VWAP sample. VWAP is NaN when the sliding
// window held no volume at snapshot time.
type VwapPoint struct {
	MinuteTSMS int64
	VWAP       float64
}

// VwapHistory is a fixed-capacity ring of VwapPoint, written once per
// minute by the VWAP worker and read by the correlation worker. Its lock
// is held across the entire best-lag search run against it (see
// correlation.go), which is acceptable because P and MaxLagMinutes bound
// the work tightly (spec §4.C7).
type VwapHistory struct {
	mu sync.Mutex

	buf      []VwapPoint
	capacity int // H
	head     int
	tail     int
	size     int
}

// NewVwapHistory allocates a history ring of the given capacity.
func NewVwapHistory(capacity int) *VwapHistory {
	return &VwapHistory{
		buf:      make([]VwapPoint, capacity),
		capacity: capacity,
	}
}

// Append adds a new minute's VWAP point, evicting the oldest entry if the
// ring is full. The scheduler guarantees strictly increasing minute
// timestamps across calls, so entries stay chronologically ordered.
func (h *VwapHistory) Append(minuteTSMS int64, vwap float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.size == h.capacity {
		h.head = (h.head + 1) % h.capacity
		h.size--
	}
	h.buf[h.tail] = VwapPoint{MinuteTSMS: minuteTSMS, VWAP: vwap}
	h.tail = (h.tail + 1) % h.capacity
	h.size++
}

// GetRecent copies the last n entries, in chronological order, into a
// freshly allocated slice. ok is false if fewer than n entries exist.
func (h *VwapHistory) GetRecent(n int) (points []VwapPoint, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.size < n {
		return nil, false
	}
	out := make([]VwapPoint, n)
	start := (h.tail - n + h.capacity) % h.capacity
	for i := 0; i < n; i++ {
		out[i] = h.buf[(start+i)%h.capacity]
	}
	return out, true
}

// Size reports the current entry count.
func (h *VwapHistory) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// BestLagged searches this history for the lagged window (of len(src)
// points) with maximum |Pearson correlation| against src, considering
// offsets in [minOffsetMin, min(size-len(src), maxLagMin)]. It holds the
// history's lock across the whole search (spec §4.C7: "holding the lock
// across the whole search is acceptable because P=8 and max_off<=60
// bound the work"). Returns corr=NaN, found=false if there is not enough
// history (hist.size < len(src)+minOffsetMin) or every candidate window
// has a degenerate (zero-variance) denominator.
func (h *VwapHistory) BestLagged(src []float64, minOffsetMin, maxLagMin int) (corr float64, endMinuteTSMS int64, found bool) {
	windowLen := len(src)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.size < windowLen+minOffsetMin {
		return math.NaN(), 0, false
	}

	maxOffset := h.size - windowLen
	if maxLagMin < maxOffset {
		maxOffset = maxLagMin
	}

	target := make([]float64, windowLen)
	var bestCorr float64
	var bestEndTS int64

	for offset := minOffsetMin; offset <= maxOffset; offset++ {
		windowStart := floorMod(h.head+h.size-windowLen-offset, h.capacity)
		for i := 0; i < windowLen; i++ {
			target[i] = h.buf[(windowStart+i)%h.capacity].VWAP
		}

		c := pearsonCorrelation(src, target)
		if math.IsNaN(c) {
			continue
		}
		if !found || math.Abs(c) > math.Abs(bestCorr) {
			bestCorr = c
			endIdx := (windowStart + windowLen - 1) % h.capacity
			bestEndTS = h.buf[endIdx].MinuteTSMS
			found = true
		}
	}

	if !found {
		return math.NaN(), 0, false
	}
	return bestCorr, bestEndTS, true
}
