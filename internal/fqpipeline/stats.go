package fqpipeline

import (
	"time"

	"github.com/lessup/fqkit/internal/fqproc"
)

// PipelineStats is what Run returns: counts, timing, and throughput for
// one pipeline execution.
type PipelineStats struct {
	RecordsIn  uint64
	RecordsOut uint64
	Batches    uint64
	BytesIn    uint64
	BytesOut   uint64
	Elapsed    time.Duration
	Canceled   bool

	// Stat, when the run's Mode was ModeStat, holds the merged result.
	Stat *fqproc.FinalStat
}
