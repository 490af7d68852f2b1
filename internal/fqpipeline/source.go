package fqpipeline

import (
	"context"
	"sync/atomic"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqio"
	"github.com/lessup/fqkit/internal/fqrecord"
)

// batchSource is the pipeline's Input stage: it implements pargo/pipeline's
// Source interface (Prepare/Fetch/Data/Err), except each Fetch call
// acquires one RecordBatch from the pool and fills it by parsing
// records, instead of appending to an unbounded slice. One pargo pipeline
// item == one RecordBatch, never one record: this is what lets the
// worker/output stages below process and reorder whole batches.
type batchSource struct {
	ctx    context.Context
	src    *fqio.ByteSource
	parser *fqrecord.Parser
	pool   *fqrecord.BatchPool

	nextSeq uint64
	eof     bool
	err     error
	data    *fqrecord.RecordBatch

	recordsIn *atomic.Uint64
}

func newBatchSource(ctx context.Context, src *fqio.ByteSource, parser *fqrecord.Parser, pool *fqrecord.BatchPool, recordsIn *atomic.Uint64) *batchSource {
	return &batchSource{ctx: ctx, src: src, parser: parser, pool: pool, recordsIn: recordsIn}
}

// Prepare reports an unknown total size: FASTQ input is a streamed,
// single-pass source.
func (s *batchSource) Prepare(_ context.Context) int { return -1 }

// Fetch ignores pargo's requested count and always fills exactly one
// RecordBatch to its configured capacity (or until its arena has no room
// for the next record, or to EOF, whichever comes first): batch sizing is an explicit RunConfig knob, not something the
// pipeline library's internal heuristic should drive.
func (s *batchSource) Fetch(_ int) int {
	if s.eof || s.err != nil {
		s.data = nil
		return 0
	}
	if err := s.ctx.Err(); err != nil {
		s.data = nil
		s.err = fqerr.Canceled
		return 0
	}

	batch, ok := s.pool.Acquire()
	if !ok {
		s.data = nil
		s.err = fqerr.Canceled
		return 0
	}

	batch.SetSequenceNumber(s.nextSeq)
	s.nextSeq++

	added, eof, err := s.parser.Fill(batch)
	if err != nil {
		s.pool.Release(batch)
		s.data = nil
		s.err = err
		return 0
	}
	if eof {
		s.eof = true
	}
	if added == 0 {
		s.pool.Release(batch)
		s.data = nil
		return 0
	}

	s.recordsIn.Add(uint64(added))
	s.data = batch
	return added
}

func (s *batchSource) Data() interface{} { return s.data }

func (s *batchSource) Err() error { return s.err }
