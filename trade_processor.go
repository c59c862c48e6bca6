// FILE: trade_processor.go
// Package main – Trade processing worker (C5).
//
// Ground truth: original_source/src/main.c's trade-processing thread loop
// (decode, log, feed the sliding window) combined with
// src/logging/logger.c's log_latency_metrics. Runs on its own goroutine,
// draining the ingress ring with a single consumer (Pop blocks until data
// or shutdown), decoding each raw frame, and on success: appending the raw
// payload to the symbol's trade log, recording latency, and folding the
// trade into that symbol's sliding window.
package main

import (
	"errors"
	"fmt"
	"log"
)

// runTradeProcessor is the sole consumer of e.ring. It exits once Pop
// reports ShutdownEmpty, i.e. once the ring has been closed and drained.
func runTradeProcessor(e *Engine) {
	for {
		raw, result := e.ring.Pop()
		if result == ShutdownEmpty {
			return
		}
		processRawTrade(e, raw)
	}
}

func processRawTrade(e *Engine, raw RawTradeMessage) {
	var msg RawTradeMessage
	if err := e.decoder.Decode(raw.RawPayload, &msg); err != nil {
		if raw.Truncated {
			e.metrics.payloadTruncated.WithLabelValues("unknown").Inc()
		}
		if errors.Is(err, errNonTradeMessage) {
			// subscription ack or other no-data-array payload: expected
			// WS traffic, not a parse failure.
			return
		}
		e.metrics.tradesParseFailed.WithLabelValues("unknown").Inc()
		log.Printf("[WARN] trade decode failed: %v", err)
		return
	}
	msg.ReceiveTSMS = raw.ReceiveTSMS
	msg.Truncated = raw.Truncated

	sym := e.symbols[msg.SymbolIndex]
	e.metrics.tradesIngested.WithLabelValues(sym.Name).Inc()
	if msg.Truncated {
		e.metrics.payloadTruncated.WithLabelValues(sym.Name).Inc()
	}

	sym.TradeLog.WriteLine(string(raw.RawPayload))

	processTSMS := nowMS()
	networkLatencyMS := msg.ReceiveTSMS - msg.ExchangeTSMS
	processingLatencyMS := processTSMS - msg.ReceiveTSMS
	totalLatencyMS := processTSMS - msg.ExchangeTSMS
	e.latencyLog.WriteLine(fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d",
		msg.SymbolIndex, msg.ExchangeTSMS, msg.ReceiveTSMS, processTSMS,
		networkLatencyMS, processingLatencyMS, totalLatencyMS))

	sym.Window.AddTrade(msg.ExchangeTSMS, msg.Price, msg.Size)
}
