package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppendFileWritesHeaderOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "vwap.csv")

	af, err := openAppendFile(path, "timestamp_iso,vwap", false)
	require.NoError(t, err)
	af.WriteLine("2026-01-01T00:00:00+0000,100.5")
	require.NoError(t, af.Close())

	af2, err := openAppendFile(path, "timestamp_iso,vwap", false)
	require.NoError(t, err)
	af2.WriteLine("2026-01-01T00:01:00+0000,101.0")
	require.NoError(t, af2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Equal(t,
		"timestamp_iso,vwap\n2026-01-01T00:00:00+0000,100.5\n2026-01-01T00:01:00+0000,101.0\n",
		content,
	)
}

func TestOpenAppendFileNoHeaderWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.jsonl")

	af, err := openAppendFile(path, "", false)
	require.NoError(t, err)
	af.WriteLine(`{"px":"1"}`)
	require.NoError(t, af.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"px\":\"1\"}\n", string(data))
}

func TestLoggerSetLayout(t *testing.T) {
	dir := t.TempDir()
	ls := newLoggerSet(dir, false)

	trade, err := ls.tradeLog("BTC-USDT")
	require.NoError(t, err)
	defer trade.Close()
	_, err = os.Stat(filepath.Join(dir, "trades", "BTC-USDT.jsonl"))
	assert.NoError(t, err)

	vwap, err := ls.vwapLog("BTC-USDT")
	require.NoError(t, err)
	defer vwap.Close()
	_, err = os.Stat(filepath.Join(dir, "metrics", "vwap", "BTC-USDT.csv"))
	assert.NoError(t, err)
}
