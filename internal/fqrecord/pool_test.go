package fqrecord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchPoolAcquireReleaseRoundTrip(t *testing.T) {
	pool := NewBatchPool(2, 10, 64)
	defer pool.Close()

	b1, ok := pool.Acquire()
	require.True(t, ok)
	b2, ok := pool.Acquire()
	require.True(t, ok)

	// Pool exhausted: a third Acquire blocks until a Release happens.
	done := make(chan *RecordBatch, 1)
	go func() {
		b, ok := pool.Acquire()
		if ok {
			done <- b
		}
	}()

	select {
	case <-done:
		t.Fatal("Acquire should have blocked with an empty pool")
	case <-time.After(20 * time.Millisecond):
	}

	pool.Release(b1)
	select {
	case b := <-done:
		assert.Same(t, b1, b)
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock after Release")
	}

	pool.Release(b2)
}

func TestBatchPoolReleaseResetsBatch(t *testing.T) {
	pool := NewBatchPool(1, 10, 64)
	defer pool.Close()

	b, _ := pool.Acquire()
	nameSpan, _ := b.append([]byte("r1"))
	seqSpan, _ := b.append([]byte("A"))
	plusSpan, _ := b.append(nil)
	qualSpan, _ := b.append([]byte("I"))
	b.addRecord(nameSpan, seqSpan, plusSpan, qualSpan)
	b.SetSequenceNumber(3)

	pool.Release(b)

	b2, _ := pool.Acquire()
	assert.Same(t, b, b2)
	assert.Equal(t, 0, b2.Len())
	assert.Equal(t, uint64(0), b2.SequenceNumber())
}

func TestBatchPoolCloseUnblocksAcquire(t *testing.T) {
	pool := NewBatchPool(1, 10, 64)
	b, _ := pool.Acquire()
	_ = b

	done := make(chan bool, 1)
	go func() {
		_, ok := pool.Acquire()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	pool.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock after Close")
	}
}
