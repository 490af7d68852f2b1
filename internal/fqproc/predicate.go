package fqproc

import (
	"regexp"

	"github.com/lessup/fqkit/internal/fqrecord"
)

// Predicate makes a keep/drop decision about a record without mutating
// it. false means drop.
type Predicate interface {
	Test(rec fqrecord.FqRecord) bool
}

// MinQuality keeps a record iff its mean Phred score is >= Threshold.
// An empty quality string is dropped.
type MinQuality struct {
	Threshold float64
	Offset    int
}

func (p MinQuality) Test(rec fqrecord.FqRecord) bool {
	qual := rec.Quality()
	if len(qual) == 0 {
		return false
	}
	var sum int
	for _, q := range qual {
		sum += int(q) - p.Offset
	}
	mean := float64(sum) / float64(len(qual))
	return mean >= p.Threshold
}

// MinLength keeps a record iff len(sequence) >= N.
type MinLength struct{ N int }

func (p MinLength) Test(rec fqrecord.FqRecord) bool { return len(rec.Sequence()) >= p.N }

// MaxLength keeps a record iff len(sequence) <= N.
type MaxLength struct{ N int }

func (p MaxLength) Test(rec fqrecord.FqRecord) bool { return len(rec.Sequence()) <= p.N }

// MaxNRatio keeps a record iff the fraction of {N,n} bases is <= Ratio.
// An empty sequence is dropped.
type MaxNRatio struct{ Ratio float64 }

func (p MaxNRatio) Test(rec fqrecord.FqRecord) bool {
	seq := rec.Sequence()
	if len(seq) == 0 {
		return false
	}
	k := countAmbiguous(seq)
	return float64(k)/float64(len(seq)) <= p.Ratio
}

// MaxAmbiguous keeps a record iff the absolute count of {N,n} bases is
// <= N. A fixed-count sibling of MaxNRatio (SPEC_FULL.md §4.4).
type MaxAmbiguous struct{ N int }

func (p MaxAmbiguous) Test(rec fqrecord.FqRecord) bool {
	return countAmbiguous(rec.Sequence()) <= p.N
}

func countAmbiguous(seq []byte) int {
	k := 0
	for _, b := range seq {
		if b == 'N' || b == 'n' {
			k++
		}
	}
	return k
}

// NameRegexp keeps a record iff its name matches Pattern.
// (SPEC_FULL.md §4.4.)
type NameRegexp struct{ Pattern *regexp.Regexp }

func (p NameRegexp) Test(rec fqrecord.FqRecord) bool {
	return p.Pattern.Match(rec.Name())
}
