// FILE: correlation_worker.go
// Package main – Correlation search worker (C7/C8 wiring).
//
// Runs runCorrelationTick once per minute. Both this worker and the VWAP
// worker are released by the same compute_start barrier with no further
// rendezvous between them, so there is no guarantee the VWAP worker has
// appended this minute's point to a symbol's history before the
// correlation search reads it — matching the original's own
// pthread_barrier_wait race in main.c. The source vector and the lagged
// target windows are taken relative to each history's newest entry, so
// whether a symbol's current-minute point is included depends on which
// worker reaches that history first; this worker just logs and counts
// whatever runCorrelationTick finds.
package main

import (
	"context"
	"fmt"
)

func runCorrelationWorker(ctx context.Context, e *Engine) {
	for {
		e.barrier.WaitStart()
		if ctx.Err() != nil {
			e.barrier.WaitDone()
			return
		}

		minuteTSMS := e.currentMinuteMS.Load()
		results := e.runCorrelationTick()
		for _, r := range results {
			src := e.symbols[r.SourceIndex]
			tgt := e.symbols[r.TargetIndex]
			src.CorrLog.WriteLine(fmt.Sprintf("%s,%s,%.6f,%s",
				formatMinuteISO(minuteTSMS), tgt.Name, r.Correlation, formatMinuteISO(r.LagMinuteTSMS)))
			e.metrics.correlationRows.WithLabelValues(src.Name).Inc()
		}

		e.barrier.WaitDone()
	}
}
