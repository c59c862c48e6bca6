// FILE: vwap_worker.go
// Package main – VWAP snapshot worker (C6).
//
// Ground truth: original_source/src/main.c's VWAP worker thread: once per
// minute, after the scheduler releases compute_start, snapshot every
// symbol's sliding-window VWAP, append it to that symbol's history ring,
// and log it, then rendezvous at compute_done.
package main

import (
	"context"
	"fmt"
)

// runVwapWorker loops WaitStart/compute/WaitDone in lockstep with the
// scheduler until ctx is canceled.
func runVwapWorker(ctx context.Context, e *Engine) {
	for {
		e.barrier.WaitStart()
		if ctx.Err() != nil {
			e.barrier.WaitDone()
			return
		}

		minuteTSMS := e.currentMinuteMS.Load()
		for _, sym := range e.symbols {
			vwap := sym.Window.SnapshotVWAP()
			sym.VwapHist.Append(minuteTSMS, vwap)
			sym.VwapLog.WriteLine(fmt.Sprintf("%s,%.8f", formatMinuteISO(minuteTSMS), vwap))
		}

		e.barrier.WaitDone()
	}
}
