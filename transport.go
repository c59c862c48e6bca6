// FILE: transport.go
// Package main – OKX public WebSocket transport (C10).
//
// Ground truth: original_source/src/network/websocket.c, adapted from
// libwebsockets callbacks to gorilla/websocket's blocking ReadMessage loop.
// On connect, the client sends the trades-channel subscription for every
// tracked symbol; every inbound frame is timestamped and pushed onto the
// ingress ring *before* any JSON parsing (parsing happens downstream in the
// trade processor, C5), exactly as the original's
// LWS_CALLBACK_CLIENT_RECEIVE handler does. Reconnects use the same
// exponential backoff (start 2s, doubling, capped at maxReconnectAttempts)
// before giving up.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const maxReconnectAttempts = 8

// okxSubscribeRequest mirrors the {"op":"subscribe","args":[...]} payload
// the original sends once per connection, one arg per tracked symbol.
type okxSubscribeRequest struct {
	Op   string          `json:"op"`
	Args []okxSubscribeArg `json:"args"`
}

type okxSubscribeArg struct {
	Channel string `json:"channel"`
	InstID  string `json:"instId"`
}

func buildSubscribePayload(symbols []string) ([]byte, error) {
	req := okxSubscribeRequest{Op: "subscribe"}
	for _, s := range symbols {
		req.Args = append(req.Args, okxSubscribeArg{Channel: "trades", InstID: s})
	}
	return json.Marshal(req)
}

// runTransport dials the OKX public WebSocket endpoint and feeds every
// received frame into the engine's ingress ring, reconnecting with
// exponential backoff on failure. It returns once ctx is canceled or the
// retry budget is exhausted.
func runTransport(ctx context.Context, e *Engine) error {
	backoff := 2 * time.Second
	attempts := 0

	for ctx.Err() == nil {
		log.Printf("[BOOT] connecting to OKX websocket at %s", e.cfg.OKXWSURL)

		err := runTransportSession(ctx, e)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			// session ended without an error: reset the retry budget and
			// reconnect immediately, without a backoff wait
			attempts = 0
			continue
		}

		attempts++
		log.Printf("[WARN] websocket session ended: %v (retry %d/%d in %s)", err, attempts, maxReconnectAttempts, backoff)
		if attempts > maxReconnectAttempts {
			return fmt.Errorf("exhausted %d reconnect attempts: %w", maxReconnectAttempts, err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil
}

// runTransportSession owns exactly one connection's lifetime: dial,
// subscribe, then read frames until the connection drops or ctx is
// canceled.
func runTransportSession(ctx context.Context, e *Engine) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, e.cfg.OKXWSURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	symbolNames := make([]string, len(e.symbols))
	for i, s := range e.symbols {
		symbolNames[i] = s.Name
	}
	payload, err := buildSubscribePayload(symbolNames)
	if err != nil {
		return fmt.Errorf("build subscribe payload: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("send subscribe: %w", err)
	}
	log.Println("[BOOT] websocket connection established, subscription sent")

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		_ = conn.Close()
		close(done)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				return nil
			default:
				return fmt.Errorf("read: %w", err)
			}
		}

		recvTSMS := nowMS()
		raw := data
		truncated := false
		if len(raw) > e.cfg.RawPayloadCap {
			raw = raw[:e.cfg.RawPayloadCap]
			truncated = true
		}
		msg := RawTradeMessage{
			SymbolIndex: -1,
			RawPayload:  raw,
			Truncated:   truncated,
			ReceiveTSMS: recvTSMS,
		}
		e.ring.Push(msg)
	}
}
