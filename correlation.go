// FILE: correlation.go
// Package main – Pearson correlation and the lagged cross-series search (C7).
//
// Ground truth: original_source/src/compute/correlation.c. For each
// source symbol, extract its last P VWAP points, then search every
// symbol's history, its own included, for the lagged window maximizing
// |Pearson|. Self
// correlation forces min_offset=P to skip the trivially-overlapping
// window (spec §4.C7, scenario S4).
package main

import "math"

// pearsonCorrelation computes the Pearson correlation coefficient of two
// equal-length series, or NaN if the denominator is zero (spec §4.C7).
func pearsonCorrelation(x, y []float64) float64 {
	n := float64(len(x))
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
		sumXY += x[i] * y[i]
	}
	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}

// floorMod returns a non-negative remainder of a/b, for ring-index math
// where a may be negative (Go's % keeps the sign of the dividend).
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// CorrelationResult is the best cross-symbol match found for one source
// symbol in one minute tick.
type CorrelationResult struct {
	SourceIndex   int
	TargetIndex   int
	Correlation   float64
	LagMinuteTSMS int64
}

// runCorrelationTick runs the full lagged Pearson search across all N
// symbols for the current minute and returns one result per source symbol
// that had enough history to produce a non-NaN best match (spec §4.C7
// steps 1-4).
func (e *Engine) runCorrelationTick() []CorrelationResult {
	P := e.cfg.CorrelationPoints
	maxLag := e.cfg.MaxLagMinutes

	results := make([]CorrelationResult, 0, len(e.symbols))

	for i := range e.symbols {
		srcPoints, ok := e.symbols[i].VwapHist.GetRecent(P)
		if !ok {
			continue
		}
		srcVec := make([]float64, P)
		for k, p := range srcPoints {
			srcVec[k] = p.VWAP
		}

		var best CorrelationResult
		foundAny := false

		for j := range e.symbols {
			minOffset := 0
			if j == i {
				minOffset = P
			}
			corr, endTS, found := e.symbols[j].VwapHist.BestLagged(srcVec, minOffset, maxLag)
			if !found {
				continue
			}
			if !foundAny || math.Abs(corr) > math.Abs(best.Correlation) {
				best = CorrelationResult{
					SourceIndex:   i,
					TargetIndex:   j,
					Correlation:   corr,
					LagMinuteTSMS: endTS,
				}
				foundAny = true
			}
		}

		if foundAny {
			results = append(results, best)
		}
	}

	return results
}
