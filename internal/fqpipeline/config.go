// Package fqpipeline is the three-stage ordered pipeline engine:
// decode → transform/filter → encode, built directly on
// github.com/exascience/pargo/pipeline's Source/LimitedPar/StrictOrd
// primitives.
package fqpipeline

import (
	"github.com/lessup/fqkit/internal/fqlog"
	"github.com/lessup/fqkit/internal/fqproc"
)

// Mode selects which command this pipeline run implements.
type Mode int

const (
	ModeFilter Mode = iota
	ModeStat
)

// Defaults chosen for a typical desktop-class run.
const (
	DefaultBatchCapacity = 10_000
	DefaultArenaBytes    = 8 << 20 // 8 MiB
	DefaultPoolSize      = 16
)

// RunConfig is the value the CLI builds and hands to the pipeline
// engine. It carries no behavior of its own.
type RunConfig struct {
	InputPath  string
	OutputPath string

	Workers       int
	BatchCapacity int
	ArenaBytes    int
	PoolSize      int

	Lenient      bool
	PreservePlus bool

	Mode  Mode
	Chain *fqproc.FilterChain    // used when Mode == ModeFilter
	Stat  fqproc.StatAccumulator // used when Mode == ModeStat

	// OnProgress, if set, is invoked after every batch the output stage
	// commits. It is the only hook the core exposes to the CLI's
	// progress bar; the core itself never touches a terminal.
	OnProgress func(batchesDone int)

	// Logger receives the engine's diagnostics. The core never holds a
	// process-wide logger; whatever the caller injects here is all it
	// ever writes to.
	Logger fqlog.Logger
}

// normalized fills in zero-valued tunables with their defaults.
func (c RunConfig) normalized() RunConfig {
	if c.BatchCapacity <= 0 {
		c.BatchCapacity = DefaultBatchCapacity
	}
	if c.ArenaBytes <= 0 {
		c.ArenaBytes = DefaultArenaBytes
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Logger == nil {
		c.Logger = fqlog.Discard()
	}
	return c
}
