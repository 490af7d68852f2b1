package fqrecord

// BatchPool is a fixed-size set of RecordBatch objects of identical
// capacity, recycled across an entire pipeline run to bound live
// allocation. It is implemented as a
// buffered channel of idle batches: acquiring is a channel receive,
// releasing is a channel send, and closing the pool closes the channel so
// every blocked acquirer wakes with ok=false.
type BatchPool struct {
	idle chan *RecordBatch
	size int
}

// NewBatchPool eagerly constructs size batches, each with batchCapacity
// records and an arena of arenaBytes, and seeds the idle set with all of
// them.
func NewBatchPool(size, batchCapacity, arenaBytes int) *BatchPool {
	p := &BatchPool{
		idle: make(chan *RecordBatch, size),
		size: size,
	}
	for i := 0; i < size; i++ {
		p.idle <- newRecordBatch(batchCapacity, arenaBytes)
	}
	return p
}

// Size returns the pool's fixed capacity.
func (p *BatchPool) Size() int { return p.size }

// Acquire removes one idle batch, blocking until one is available or the
// pool is closed. ok is false only when the pool has been closed and
// drained.
func (p *BatchPool) Acquire() (batch *RecordBatch, ok bool) {
	b, open := <-p.idle
	return b, open
}

// Release clears a batch (record count and arena cursor reset, arena
// bytes left in place) and returns it to the idle set.
func (p *BatchPool) Release(b *RecordBatch) {
	b.reset()
	p.idle <- b
}

// Close closes the idle channel. Safe to call once, after every
// outstanding batch has been Released; any blocked or future Acquire
// returns ok=false once the idle set drains.
func (p *BatchPool) Close() {
	close(p.idle)
}
