// FILE: metrics.go
// Package main – Prometheus metrics for observability (C13).
//
// Exposes the counters/gauges the engine updates during operation:
//   • okxproc_trades_ingested_total{symbol}          – trades successfully decoded by the trade processor
//   • okxproc_trades_dropped_total                   – ingress ring overflow evictions (drop-oldest)
//   • okxproc_trades_parse_failed_total{symbol}      – decoder rejections (symbol label is always "unknown")
//   • okxproc_trade_payload_truncated_total{symbol}  – raw payloads truncated at RawPayloadCap
//   • okxproc_correlation_rows_total{symbol}         – correlation rows emitted per source symbol
//   • okxproc_scheduler_drift_ms                     – drift of the last scheduler tick
//   • okxproc_scheduler_missed_total                 – scheduler wake-ups whose target time had already passed
//   • okxproc_system_cpu_percent                     – process CPU utilization sample
//   • okxproc_system_memory_mb                        – process RSS sample, megabytes
//   • okxproc_ingress_queue_depth                     – ingress ring occupancy sample
//
// Registered in init() and served by the HTTP handler started in main.go at
// /metrics (Prometheus text exposition format).
package main

import "github.com/prometheus/client_golang/prometheus"

// engineMetrics bundles the Prometheus series the engine touches on its hot
// paths, so workers take one *engineMetrics parameter instead of reaching
// for package-level vars directly.
type engineMetrics struct {
	tradesIngested    *prometheus.CounterVec
	tradesDropped     prometheus.Counter
	tradesParseFailed *prometheus.CounterVec
	payloadTruncated  *prometheus.CounterVec
	correlationRows   *prometheus.CounterVec
	schedulerDrift    prometheus.Gauge
	schedulerMissed   prometheus.Counter
	systemCPUPercent  prometheus.Gauge
	systemMemoryMB    prometheus.Gauge
	ingressQueueDepth prometheus.Gauge
}

var defaultMetrics = newEngineMetrics()

func newEngineMetrics() *engineMetrics {
	return &engineMetrics{
		tradesIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okxproc_trades_ingested_total",
				Help: "Trade messages successfully decoded by the trade processor, by symbol.",
			},
			[]string{"symbol"},
		),
		tradesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "okxproc_trades_dropped_total",
				Help: "Ingress ring overflow evictions (drop-oldest policy).",
			},
		),
		tradesParseFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okxproc_trades_parse_failed_total",
				Help: "Trade messages rejected by the decoder (symbol label is always \"unknown\").",
			},
			[]string{"symbol"},
		),
		payloadTruncated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okxproc_trade_payload_truncated_total",
				Help: "Raw payloads truncated at RawPayloadCap, by symbol.",
			},
			[]string{"symbol"},
		),
		correlationRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okxproc_correlation_rows_total",
				Help: "Correlation rows emitted per source symbol.",
			},
			[]string{"symbol"},
		),
		schedulerDrift: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "okxproc_scheduler_drift_ms",
				Help: "Drift of the last scheduler tick in milliseconds.",
			},
		),
		schedulerMissed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "okxproc_scheduler_missed_total",
				Help: "Scheduler wake-ups whose target time had already passed, run immediately.",
			},
		),
		systemCPUPercent: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "okxproc_system_cpu_percent",
				Help: "Process CPU utilization sample.",
			},
		),
		systemMemoryMB: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "okxproc_system_memory_mb",
				Help: "Process resident memory sample, in megabytes.",
			},
		),
		ingressQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "okxproc_ingress_queue_depth",
				Help: "Ingress ring occupancy sample.",
			},
		),
	}
}

func init() {
	prometheus.MustRegister(
		defaultMetrics.tradesIngested,
		defaultMetrics.tradesDropped,
		defaultMetrics.tradesParseFailed,
		defaultMetrics.payloadTruncated,
		defaultMetrics.correlationRows,
		defaultMetrics.schedulerDrift,
		defaultMetrics.schedulerMissed,
		defaultMetrics.systemCPUPercent,
		defaultMetrics.systemMemoryMB,
		defaultMetrics.ingressQueueDepth,
	)
}
