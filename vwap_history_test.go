package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVwapHistoryEvictsOldestOnOverflow(t *testing.T) {
	h := NewVwapHistory(3)
	h.Append(1, 1.0)
	h.Append(2, 2.0)
	h.Append(3, 3.0)
	h.Append(4, 4.0) // evicts minute 1

	points, ok := h.GetRecent(3)
	assert.True(t, ok)
	assert.Equal(t, []int64{2, 3, 4}, []int64{points[0].MinuteTSMS, points[1].MinuteTSMS, points[2].MinuteTSMS})
}

func TestVwapHistoryGetRecentInsufficientData(t *testing.T) {
	h := NewVwapHistory(10)
	h.Append(1, 1.0)
	_, ok := h.GetRecent(5)
	assert.False(t, ok)
}

func TestVwapHistoryGetRecentOrderedChronologically(t *testing.T) {
	h := NewVwapHistory(5)
	for i := int64(1); i <= 5; i++ {
		h.Append(i, float64(i))
	}
	points, ok := h.GetRecent(3)
	assert.True(t, ok)
	assert.Equal(t, float64(3), points[0].VWAP)
	assert.Equal(t, float64(4), points[1].VWAP)
	assert.Equal(t, float64(5), points[2].VWAP)
}

func TestVwapHistoryBestLaggedFindsPerfectLag(t *testing.T) {
	// target history ends with src, so the window at offset 0 matches it
	target := NewVwapHistory(20)
	src := []float64{1, 2, 3, 4}

	// Build target so that offset=0 (the window ending at minute 8)
	// reproduces src exactly: minutes 5..8 hold src, minutes 1..4 hold a
	// descending run that scores -1 at offset 4 and loses the |corr| tie
	// to the earlier offset.
	vals := []float64{10, 9, 8, 7, 1, 2, 3, 4}
	for i, v := range vals {
		target.Append(int64(i+1), v)
	}

	corr, endTS, found := target.BestLagged(src, 0, 10)
	assert.True(t, found)
	assert.InDelta(t, 1.0, corr, 1e-9)
	assert.Equal(t, int64(8), endTS)
}

func TestVwapHistoryBestLaggedNotEnoughHistory(t *testing.T) {
	h := NewVwapHistory(10)
	h.Append(1, 1.0)
	_, _, found := h.BestLagged([]float64{1, 2, 3}, 0, 5)
	assert.False(t, found)
}

func TestVwapHistorySelfCorrelationSkipsTrivialWindow(t *testing.T) {
	h := NewVwapHistory(20)
	src := make([]float64, 8)
	for i := range src {
		h.Append(int64(i+1), float64(i+1))
		src[i] = float64(i + 1)
	}
	// With minOffsetMin == len(src), the only legal window would need
	// size >= 2*len(src); with fewer points than that, no match is found.
	_, _, found := h.BestLagged(src, len(src), 60)
	assert.False(t, found)
}
