// FILE: decoder.go
// Package main – OKX public trade-channel JSON decoder (C11).
//
// Ground truth: original_source/src/network/okx_parser.c. The original
// hand-rolls a JSON field scanner; in Go the idiomatic approach is
// encoding/json into a minimal struct, keeping the same validation and
// fallback rules: unknown instId rejects the message, non-positive or
// unparsable px/sz rejects it, and a missing or invalid ts falls back to
// now_ms() with a logged warning rather than rejecting (spec §4.C11 /
// original's "WARNING: Invalid timestamp ..."/"WARNING: Missing
// timestamp ..." fprintf calls). Subscription acks and any other
// no-data-array payload are expected, non-trade traffic and are reported
// via errNonTradeMessage rather than a logged rejection.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
)

// errNonTradeMessage is returned by Decode for frames that are expected,
// non-trade WS traffic — subscription acks and any other channel payload
// with no data array — so the caller can skip logging and skip counting
// them as parse failures.
var errNonTradeMessage = errors.New("non-trade message (ack or empty data)")

// okxTradeEnvelope mirrors OKX's public trade-channel push format:
//
//	{"arg":{"channel":"trades","instId":"BTC-USDT"},
//	 "data":[{"instId":"BTC-USDT","px":"27340.8","sz":"0.0005","side":"sell","ts":"1694464949239"}]}
type okxTradeEnvelope struct {
	Data []okxTradeEntry `json:"data"`
}

type okxTradeEntry struct {
	InstID string `json:"instId"`
	Px     string `json:"px"`
	Sz     string `json:"sz"`
	Ts     string `json:"ts"`
}

// okxDecoder maps an instId string to its stable symbol index.
type okxDecoder struct {
	index map[string]int
}

func newOKXDecoder(symbols []string) *okxDecoder {
	idx := make(map[string]int, len(symbols))
	for i, s := range symbols {
		idx[s] = i
	}
	return &okxDecoder{index: idx}
}

// Decode parses one OKX trade push and fills msg with the first trade
// entry found. Returns an error describing why the message was rejected;
// the caller counts rejections per decoder error and never retries the
// same bytes.
func (d *okxDecoder) Decode(raw []byte, msg *RawTradeMessage) error {
	var env okxTradeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	if len(env.Data) == 0 {
		return errNonTradeMessage
	}
	entry := env.Data[0]

	symbolIdx, ok := d.index[entry.InstID]
	if !ok {
		return fmt.Errorf("unknown symbol %q", entry.InstID)
	}

	price, err := strconv.ParseFloat(entry.Px, 64)
	if err != nil || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("invalid price %q for %s", entry.Px, entry.InstID)
	}

	size, err := strconv.ParseFloat(entry.Sz, 64)
	if err != nil || size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("invalid size %q for %s", entry.Sz, entry.InstID)
	}

	tsMS, err := strconv.ParseInt(entry.Ts, 10, 64)
	if entry.Ts == "" {
		log.Printf("[WARN] missing timestamp for %s, falling back to now_ms()", entry.InstID)
		tsMS = nowMS()
	} else if err != nil || tsMS <= 0 {
		log.Printf("[WARN] invalid timestamp %q for %s, falling back to now_ms()", entry.Ts, entry.InstID)
		tsMS = nowMS()
	}

	msg.SymbolIndex = symbolIdx
	msg.ExchangeTSMS = tsMS
	msg.Price = price
	msg.Size = size
	return nil
}
