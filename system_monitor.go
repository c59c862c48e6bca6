// FILE: system_monitor.go
// Package main – Process CPU/memory sampling for the scheduler's periodic
// performance log (part of C8/C9).
//
// Ground truth: original_source/src/utils/system_monitor.c. CPU percent is
// derived from the delta of process CPU time (user+sys, via
// syscall.Getrusage) over the delta of wall time since the previous
// sample — the Go analogue of CLOCK_PROCESS_CPUTIME_ID vs CLOCK_MONOTONIC.
// Memory is read from /proc/self/status's VmRSS line, same as the original.
package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

var usageSample struct {
	mu           sync.Mutex
	lastWallNS   int64
	lastCPUTimeS float64
}

// sampleProcessUsage returns (cpuPercent, memoryMB) for the current
// process, using the elapsed time since the previous call as the
// measurement window. The first call always returns cpuPercent=0, matching
// the original's "0.0 on first call" behavior.
func sampleProcessUsage() (cpuPercent, memoryMB float64) {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0, readMemoryMB()
	}
	cpuTimeS := float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6 +
		float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6
	wallNS := nowMonotonicNS()

	usageSample.mu.Lock()
	defer usageSample.mu.Unlock()

	if usageSample.lastCPUTimeS != 0 {
		diffCPU := cpuTimeS - usageSample.lastCPUTimeS
		diffWallS := float64(wallNS-usageSample.lastWallNS) / 1e9
		if diffWallS > 0 {
			cpuPercent = (diffCPU / diffWallS) * 100.0
		}
	}
	usageSample.lastCPUTimeS = cpuTimeS
	usageSample.lastWallNS = wallNS

	return cpuPercent, readMemoryMB()
}

// readMemoryMB reads VmRSS from /proc/self/status and converts kB to MB.
// Returns 0 on any read error (non-Linux platform, sandboxed procfs, etc.).
func readMemoryMB() float64 {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / 1024.0
	}
	return 0
}
