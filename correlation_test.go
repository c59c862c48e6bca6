package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonCorrelationPerfectPositive(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, pearsonCorrelation(x, y), 1e-9)
}

func TestPearsonCorrelationPerfectNegative(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, pearsonCorrelation(x, y), 1e-9)
}

func TestPearsonCorrelationDegenerateIsNaN(t *testing.T) {
	x := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}
	assert.True(t, math.IsNaN(pearsonCorrelation(x, y)))
}

func TestPearsonCorrelationSymmetric(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9}
	y := []float64{2, 7, 1, 8, 2, 8}
	assert.InDelta(t, pearsonCorrelation(x, y), pearsonCorrelation(y, x), 1e-12)
}

func TestFloorModNeverNegative(t *testing.T) {
	assert.Equal(t, 2, floorMod(-1, 3))
	assert.Equal(t, 0, floorMod(-3, 3))
	assert.Equal(t, 1, floorMod(4, 3))
}

func TestRunCorrelationTickSkipsSymbolsWithoutEnoughHistory(t *testing.T) {
	cfg := Config{CorrelationPoints: 4, MaxLagMinutes: 10}
	e := &Engine{
		cfg: cfg,
		symbols: []*Symbol{
			{Name: "A", VwapHist: NewVwapHistory(20)},
			{Name: "B", VwapHist: NewVwapHistory(20)},
		},
	}
	// Neither symbol has any history yet.
	results := e.runCorrelationTick()
	assert.Empty(t, results)
}

func TestRunCorrelationTickFindsBestMatch(t *testing.T) {
	cfg := Config{CorrelationPoints: 4, MaxLagMinutes: 10}
	e := &Engine{
		cfg: cfg,
		symbols: []*Symbol{
			{Name: "A", VwapHist: NewVwapHistory(20)},
			{Name: "B", VwapHist: NewVwapHistory(20)},
		},
	}
	for i := int64(1); i <= 8; i++ {
		e.symbols[0].VwapHist.Append(i, float64(i))
		e.symbols[1].VwapHist.Append(i, float64(i)) // identical series, lag 0
	}

	results := e.runCorrelationTick()
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.InDelta(t, 1.0, math.Abs(r.Correlation), 1e-9)
	}
}
