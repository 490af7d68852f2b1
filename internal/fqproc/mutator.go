// Package fqproc implements the per-record Processor Chain: the
// mutators and predicates filter composes, and the stat accumulator
// stat folds into: a closed set of tagged variants behind small
// capability interfaces, not a class hierarchy.
package fqproc

import "github.com/lessup/fqkit/internal/fqrecord"

// MutateOutcome reports whether a Mutator kept or dropped a record.
type MutateOutcome int

const (
	Kept MutateOutcome = iota
	Dropped
)

// Mutator rewrites (or drops) a single record in place.
type Mutator interface {
	Apply(rec fqrecord.FqRecord) MutateOutcome
}

// TrimMode selects which end(s) QualityTrimmer trims from.
type TrimMode int

const (
	TrimBoth TrimMode = iota
	TrimFivePrime
	TrimThreePrime
)

// QualityTrimmer trims low-quality bases from one or both ends of a
// read, dropping it if the remainder is shorter than MinLen. From each
// selected end, bases are removed while quality[i]-Offset < Threshold:
// TrimBoth scans the 5' end and then the 3' end; TrimFivePrime and
// TrimThreePrime scan only their own end.
type QualityTrimmer struct {
	Threshold int
	MinLen    int
	Mode      TrimMode
	Offset    int
}

func (t QualityTrimmer) Apply(rec fqrecord.FqRecord) MutateOutcome {
	// A read that was already too short at parse time, before any
	// trimming in this chain, never clears MinLen no matter how the
	// scan below comes out — OriginalLen lets this compaction boundary
	// be decided up front instead of walking quality bytes for nothing.
	if rec.OriginalLen() < t.MinLen {
		rec.Drop()
		return Dropped
	}

	qual := rec.Quality()
	n := len(qual)
	start, end := 0, n

	if t.Mode == TrimBoth || t.Mode == TrimFivePrime {
		for start < end && int(qual[start])-t.Offset < t.Threshold {
			start++
		}
	}
	if t.Mode == TrimBoth || t.Mode == TrimThreePrime {
		for end > start && int(qual[end-1])-t.Offset < t.Threshold {
			end--
		}
	}

	if end-start < t.MinLen {
		rec.Drop()
		return Dropped
	}
	if start != 0 || end != n {
		rec.TrimSequence(start, end-start)
	}
	return Kept
}

// HeadCrop unconditionally removes the first N bases (and matching
// quality bytes), regardless of quality. A supplemented fixed-length
// sibling of QualityTrimmer (SPEC_FULL.md §4.4).
type HeadCrop struct {
	N int
}

func (c HeadCrop) Apply(rec fqrecord.FqRecord) MutateOutcome {
	seq := rec.Sequence()
	n := c.N
	if n > len(seq) {
		n = len(seq)
	}
	rec.TrimSequence(n, len(seq)-n)
	return Kept
}

// TailCrop unconditionally removes the last N bases (and matching
// quality bytes), regardless of quality.
type TailCrop struct {
	N int
}

func (c TailCrop) Apply(rec fqrecord.FqRecord) MutateOutcome {
	seq := rec.Sequence()
	n := c.N
	if n > len(seq) {
		n = len(seq)
	}
	rec.TrimSequence(0, len(seq)-n)
	return Kept
}
