package fqpipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/exascience/pargo/pipeline"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqio"
	"github.com/lessup/fqkit/internal/fqproc"
	"github.com/lessup/fqkit/internal/fqrecord"
)

// Pipeline drives one stat or filter run end to end: open source/sink,
// build the BatchPool, wire the three pargo stages, run, and tear down.
// A Pipeline is used once.
type Pipeline struct {
	cfg    RunConfig
	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a Pipeline from cfg, applying defaults for any unset
// tunable.
func New(cfg RunConfig) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{cfg: cfg.normalized(), ctx: ctx, cancel: cancel}
}

// Cancel triggers cooperative cancellation: every stage observes it at
// its next work boundary, drains in-flight batches back to the pool,
// and shuts down without corrupting the output.
func (p *Pipeline) Cancel() { p.cancel() }

// Run executes the pipeline and returns once every batch has been
// produced, processed, and committed (or the run was canceled or
// failed).
func (p *Pipeline) Run() (PipelineStats, error) {
	start := time.Now()

	src, err := fqio.OpenSource(p.cfg.InputPath)
	if err != nil {
		return PipelineStats{}, err
	}
	defer src.Close()

	var sink *fqio.ByteSink
	if p.cfg.Mode == ModeFilter {
		sink, err = fqio.CreateSink(p.cfg.OutputPath)
		if err != nil {
			return PipelineStats{}, err
		}
	}

	pool := fqrecord.NewBatchPool(p.cfg.PoolSize, p.cfg.BatchCapacity, p.cfg.ArenaBytes)
	parser := fqrecord.NewParser(src, p.cfg.InputPath, p.cfg.Lenient)

	var recordsIn, recordsOut, batches atomic.Uint64
	var errOnce sync.Once
	var firstErr error
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			p.cfg.Logger.Errorf("pipeline failed, canceling: %s", err)
			p.cancel()
		})
	}

	bs := newBatchSource(p.ctx, src, parser, pool, &recordsIn)

	var merged *fqproc.PartialStat
	if p.cfg.Mode == ModeStat {
		merged = p.cfg.Stat.NewPartial()
	}

	// workItem is what the worker stage hands the output stage: the
	// processed batch plus (for stat) the thread-local partial folded
	// from it.
	type workItem struct {
		batch   *fqrecord.RecordBatch
		partial *fqproc.PartialStat
	}

	workerFn := func(_ int, data interface{}) interface{} {
		batch, _ := data.(*fqrecord.RecordBatch)
		if batch == nil {
			return nil
		}
		if p.ctx.Err() != nil {
			return &workItem{batch: batch}
		}

		switch p.cfg.Mode {
		case ModeFilter:
			p.cfg.Chain.Apply(batch)
			return &workItem{batch: batch}
		case ModeStat:
			partial := p.cfg.Stat.NewPartial()
			for _, rec := range batch.Records() {
				p.cfg.Stat.Fold(rec, partial)
			}
			return &workItem{batch: batch, partial: partial}
		default:
			return &workItem{batch: batch}
		}
	}

	outputFn := func(_ int, data interface{}) interface{} {
		item, _ := data.(*workItem)
		if item == nil || item.batch == nil {
			return nil
		}
		batch := item.batch
		defer pool.Release(batch)

		switch {
		case p.ctx.Err() != nil:
			// Draining: skip commit, just recycle the batch.
		case p.cfg.Mode == ModeFilter:
			for _, rec := range batch.Records() {
				if err := fqrecord.WriteRecord(sink, rec, p.cfg.PreservePlus); err != nil {
					fail(err)
					break
				}
				recordsOut.Add(1)
			}
		case p.cfg.Mode == ModeStat:
			merged.Merge(item.partial)
			recordsOut.Add(uint64(batch.Len()))
		}

		n := batches.Add(1)
		if p.cfg.OnProgress != nil {
			p.cfg.OnProgress(int(n))
		}
		return nil
	}

	var pp pipeline.Pipeline
	pp.Source(bs)
	pp.Add(
		pipeline.LimitedPar(p.cfg.Workers, pipeline.Receive(workerFn)),
		pipeline.StrictOrd(pipeline.Receive(outputFn)),
	)
	pp.Run()

	if perr := pp.Err(); perr != nil && !fqerr.IsCanceled(perr) {
		fail(perr)
	}
	if serr := bs.Err(); serr != nil && !fqerr.IsCanceled(serr) {
		fail(serr)
	}

	stats := PipelineStats{
		RecordsIn:  recordsIn.Load(),
		RecordsOut: recordsOut.Load(),
		Batches:    batches.Load(),
		BytesIn:    uint64(src.BytesRead()),
		Elapsed:    time.Since(start),
	}
	if sink != nil {
		stats.BytesOut = uint64(sink.BytesWritten())
	}
	p.cfg.Logger.Infof("pipeline done: %d records in, %d out, %d batches, %s",
		stats.RecordsIn, stats.RecordsOut, stats.Batches, stats.Elapsed)

	canceled := p.ctx.Err() != nil
	if p.cfg.Mode == ModeFilter {
		if canceled && firstErr == nil {
			// Whatever the output stage already committed stays;
			// just flush and close cleanly.
			_ = sink.Close()
		} else if firstErr != nil {
			_ = sink.Discard()
		} else if err := sink.Close(); err != nil {
			firstErr = err
		}
	}

	if p.cfg.Mode == ModeStat {
		final := fqproc.Derive(merged)
		stats.Stat = &final
	}

	switch {
	case firstErr != nil:
		return stats, firstErr
	case canceled:
		stats.Canceled = true
		return stats, fqerr.Canceled
	default:
		return stats, nil
	}
}
