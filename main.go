// FILE: main.go
// Package main – Program entrypoint and HTTP/metrics server.
//
// Boot sequence:
//   1) loadProcEnv()     – read .env (no shell exports required)
//   2) cfg := loadConfig() – design defaults -> optional YAML overlay -> env
//   3) NewEngine(cfg, ...)  – allocate every fixed-capacity buffer up front
//   4) start the /healthz + /metrics HTTP server on cfg.MetricsPort
//   5) launch the five engine goroutines: transport, trade processor,
//      scheduler, VWAP worker, correlation worker
//   6) block until SIGINT/SIGTERM, then cancel, drain, and shut down
//
// Example:
//   go run .
//   SYMBOLS=BTC-USDT,ETH-USDT METRICS_PORT=9090 go run .
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	loadProcEnv()
	cfg := loadConfig()

	log.Printf("[BOOT] tracking %d symbols: %v", len(cfg.Symbols), cfg.Symbols)

	loggers := newLoggerSet(cfg.DataDir, cfg.FsyncPerWrite)
	engine, err := NewEngine(cfg, loggers, defaultMetrics)
	if err != nil {
		log.Fatalf("[BOOT] engine init failed: %v", err)
	}
	defer engine.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.MetricsPort), Handler: mux}
	go func() {
		log.Printf("[BOOT] serving :%d/healthz and :%d/metrics", cfg.MetricsPort, cfg.MetricsPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[ERROR] metrics server: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := runTransport(ctx, engine); err != nil {
			log.Printf("[ERROR] transport stopped: %v", err)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runTradeProcessor(engine)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runVwapWorker(ctx, engine)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runCorrelationWorker(ctx, engine)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runScheduler(ctx, engine)
	}()

	<-ctx.Done()
	log.Println("[BOOT] shutdown requested, draining...")
	engine.ring.Shutdown()

	wg.Wait()

	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("[BOOT] shutdown complete")
}
