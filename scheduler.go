// FILE: scheduler.go
// Package main – Minute-aligned scheduler and the compute barrier (C8).
//
// Ground truth: original_source/src/scheduler/scheduler.c. The scheduler
// goroutine aligns to minute boundaries on the monotonic clock, predicts
// how long the compute phase will take via an EMA of past durations, sleeps
// until (boundary - predicted_duration), then releases the VWAP and
// correlation workers through a cyclic barrier and waits for them to finish
// before logging drift and scheduling the next tick.
//
// Go has no pthread_barrier_wait equivalent, so cyclicBarrier reimplements
// the same generational-rendezvous idea with sync.Cond: N parties call
// Wait(); the Nth arrival wakes everyone and starts a new generation.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// cyclicBarrier is a reusable rendezvous point for a fixed number of
// parties, equivalent to POSIX's pthread_barrier_t.
type cyclicBarrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation int
}

func newCyclicBarrier(parties int) *cyclicBarrier {
	b := &cyclicBarrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until `parties` goroutines have called Wait in the same
// generation, then releases them all together.
func (b *cyclicBarrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}

// twoPhaseBarrier pairs the compute_start and compute_done rendezvous
// points the scheduler and its two workers cycle through every minute.
type twoPhaseBarrier struct {
	start *cyclicBarrier
	done  *cyclicBarrier
}

func newTwoPhaseBarrier(parties int) *twoPhaseBarrier {
	return &twoPhaseBarrier{start: newCyclicBarrier(parties), done: newCyclicBarrier(parties)}
}

// WaitStart blocks until the coordinator and every worker have arrived,
// i.e. until the coordinator has published currentMinuteMS and released
// the tick.
func (b *twoPhaseBarrier) WaitStart() { b.start.Wait() }

// WaitDone blocks until the coordinator and every worker have finished the
// current minute's compute phase.
func (b *twoPhaseBarrier) WaitDone() { b.done.Wait() }

const (
	schedEMAAlpha    = 0.2
	schedEMAMaxNS    = int64(100 * time.Millisecond)
	schedPeriodNS    = int64(60 * time.Second)
	nsPerMillisecond = int64(time.Millisecond)
)

// runScheduler is the coordinator goroutine (C8). It runs until ctx is
// canceled, at which point it performs one final barrier round (so the
// VWAP and correlation workers — blocked in WaitStart — can observe
// ctx.Done() and exit) before returning.
func runScheduler(ctx context.Context, e *Engine) {
	emaDurationNS := 0.0

	nowNS := nowMonotonicNS()
	scheduledNS := ((nowNS / schedPeriodNS) + 1) * schedPeriodNS

	for {
		if ctx.Err() != nil {
			releaseBarrierForShutdown(e.barrier)
			return
		}

		nowNS = nowMonotonicNS()
		for scheduledNS <= nowNS {
			scheduledNS += schedPeriodNS
		}

		predictedDurationNS := int64(emaDurationNS)
		targetWakeupNS := scheduledNS - predictedDurationNS
		if targetWakeupNS <= nowNS {
			lateByNS := nowNS - targetWakeupNS
			log.Printf("[WARN] scheduler missed window (late by %.2fms), running immediately", float64(lateByNS)/float64(nsPerMillisecond))
			targetWakeupNS = nowNS
			e.metrics.schedulerMissed.Inc()
		}

		sleepFor := time.Duration(targetWakeupNS - nowMonotonicNS())
		if sleepFor > 0 {
			timer := time.NewTimer(sleepFor)
			select {
			case <-ctx.Done():
				timer.Stop()
				releaseBarrierForShutdown(e.barrier)
				return
			case <-timer.C:
			}
		}

		if ctx.Err() != nil {
			releaseBarrierForShutdown(e.barrier)
			return
		}

		e.currentMinuteMS.Store(floorToMinuteMS(nowMS()))
		workStartNS := nowMonotonicNS()

		e.barrier.WaitStart()
		e.barrier.WaitDone()

		workEndNS := nowMonotonicNS()
		workDurationNS := workEndNS - workStartNS

		emaDurationNS = schedEMAAlpha*float64(workDurationNS) + (1-schedEMAAlpha)*emaDurationNS
		if emaDurationNS < 0 {
			emaDurationNS = 0
		}
		if emaDurationNS > float64(schedEMAMaxNS) {
			emaDurationNS = float64(schedEMAMaxNS)
		}

		driftNS := workEndNS - scheduledNS
		driftMS := float64(driftNS) / float64(nsPerMillisecond)
		e.metrics.schedulerDrift.Set(driftMS)

		cpuPct, memMB := sampleProcessUsage()
		e.metrics.systemCPUPercent.Set(cpuPct)
		e.metrics.systemMemoryMB.Set(memMB)
		e.metrics.ingressQueueDepth.Set(float64(e.ring.Len()))

		droppedTotal := e.ring.DroppedCount()
		e.metrics.tradesDropped.Add(float64(droppedTotal - e.lastDroppedTotal))
		e.lastDroppedTotal = droppedTotal

		e.sysLog.WriteLine(fmt.Sprintf("%d,%.2f,%.2f", nowMS(), cpuPct, memMB))
		e.schedLog.WriteLine(fmt.Sprintf("%d,%d,%.2f", scheduledNS/nsPerMillisecond, workEndNS/nsPerMillisecond, driftMS))

		scheduledNS += schedPeriodNS
	}
}

// releaseBarrierForShutdown performs one last barrier round so workers
// parked in WaitStart observe ctx.Done() (checked immediately after they
// wake) and return instead of blocking forever.
func releaseBarrierForShutdown(b *twoPhaseBarrier) {
	b.WaitStart()
	b.WaitDone()
}
