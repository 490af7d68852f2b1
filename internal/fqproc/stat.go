package fqproc

import "github.com/lessup/fqkit/internal/fqrecord"

// MaxPhred is the highest Phred score the quality histogram tracks;
// higher observed scores are clamped into this bucket.
const MaxPhred = 42

// baseColumns is the width of a per-position base tally row: one column
// per Base value, BaseN included.
const baseColumns = int(fqrecord.BaseN) + 1

// PartialStat is a per-worker accumulation of per-position quality and
// base tallies, commutative and associative under Merge.
type PartialStat struct {
	RecordCount   uint64
	ReadLength    int
	QualityCounts [][]uint64            // [pos][score], score in [0, MaxPhred]
	BaseCounts    [][baseColumns]uint64 // [pos][base]
}

// NewPartialStat allocates a zeroed PartialStat sized for readLength
// positions.
func NewPartialStat(readLength int) *PartialStat {
	qc := make([][]uint64, readLength)
	bc := make([][baseColumns]uint64, readLength)
	for i := range qc {
		qc[i] = make([]uint64, MaxPhred+1)
	}
	return &PartialStat{ReadLength: readLength, QualityCounts: qc, BaseCounts: bc}
}

// Merge combines other into s componentwise. Order-independent.
func (s *PartialStat) Merge(other *PartialStat) {
	if other == nil || other.RecordCount == 0 {
		return
	}
	s.RecordCount += other.RecordCount
	for i := 0; i < s.ReadLength && i < other.ReadLength; i++ {
		for q := range s.QualityCounts[i] {
			s.QualityCounts[i][q] += other.QualityCounts[i][q]
		}
		for b := range s.BaseCounts[i] {
			s.BaseCounts[i][b] += other.BaseCounts[i][b]
		}
	}
}

// StatAccumulator is the `stat` command's Processor Chain: a single
// accumulator that folds every record in a batch into a per-worker
// PartialStat.
type StatAccumulator struct {
	Offset     int
	ReadLength int
}

// NewPartial allocates a fresh PartialStat for one worker to fold into.
func (a StatAccumulator) NewPartial() *PartialStat {
	return NewPartialStat(a.ReadLength)
}

// Fold folds rec into partial using the accumulator's configured offset.
func (a StatAccumulator) Fold(rec fqrecord.FqRecord, partial *PartialStat) {
	seq := rec.Sequence()
	qual := rec.Quality()
	limit := partial.ReadLength
	if len(seq) < limit {
		limit = len(seq)
	}
	for i := 0; i < limit; i++ {
		score := int(qual[i]) - a.Offset
		if score < 0 {
			score = 0
		}
		if score > MaxPhred {
			score = MaxPhred
		}
		partial.QualityCounts[i][score]++
		partial.BaseCounts[i][fqrecord.ClassifyBase(seq[i])]++
	}
	partial.RecordCount++
}
