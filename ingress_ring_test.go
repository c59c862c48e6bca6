package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngressRingOverflowDropsOldest(t *testing.T) {
	r := NewIngressRing(4) // usable capacity 3

	push := func(idx int) {
		r.Push(RawTradeMessage{SymbolIndex: idx})
	}

	push(1)
	push(2)
	push(3)
	push(4) // should evict symbol 1

	assert.Equal(t, uint64(1), r.DroppedCount())
	assert.Equal(t, 3, r.Len())

	msg, res := r.Pop()
	assert.Equal(t, Got, res)
	assert.Equal(t, 2, msg.SymbolIndex, "oldest surviving entry should be the second push")
}

func TestIngressRingPopBlocksThenUnblocksOnPush(t *testing.T) {
	r := NewIngressRing(4)
	done := make(chan RawTradeMessage, 1)

	go func() {
		msg, res := r.Pop()
		if res == Got {
			done <- msg
		}
	}()

	r.Push(RawTradeMessage{SymbolIndex: 7})

	msg := <-done
	assert.Equal(t, 7, msg.SymbolIndex)
}

func TestIngressRingShutdownUnblocksEmptyPop(t *testing.T) {
	r := NewIngressRing(4)
	done := make(chan PopResult, 1)

	go func() {
		_, res := r.Pop()
		done <- res
	}()

	r.Shutdown()

	res := <-done
	assert.Equal(t, ShutdownEmpty, res)
}

func TestIngressRingMinimumCapacityEnforced(t *testing.T) {
	r := NewIngressRing(0)
	assert.Equal(t, 2, r.capacity)
}
