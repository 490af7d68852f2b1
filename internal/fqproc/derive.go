package fqproc

import (
	"math"

	"github.com/lessup/fqkit/internal/fqrecord"
	"gonum.org/v1/gonum/stat"
)

// FinalStat is the fully-merged result of a `stat` run plus the derived
// values computed once, after every worker's PartialStat has been
// merged.
type FinalStat struct {
	RecordCount uint64
	ReadLength  int
	TotalBases  uint64

	Q20, Q30 uint64

	ATotal, CTotal, GTotal, TTotal, NTotal uint64

	// PerPosition is one entry per read position (1-indexed in the
	// report, 0-indexed here): average quality and estimated error rate.
	PerPosition []PositionStat
}

// PositionStat holds the per-base-position derived quality summary.
type PositionStat struct {
	A, C, G, T, N uint64
	AvgQual       float64
	ErrRate       float64
}

// Derive computes FinalStat from a fully-merged PartialStat, per the
// weighted quality histogram. Per-position averages use
// gonum.org/v1/gonum/stat.Mean over the weighted histogram rather than
// a hand-rolled weighted sum.
func Derive(p *PartialStat) FinalStat {
	out := FinalStat{
		RecordCount: p.RecordCount,
		ReadLength:  p.ReadLength,
		TotalBases:  p.RecordCount * uint64(p.ReadLength),
		PerPosition: make([]PositionStat, p.ReadLength),
	}

	scores := make([]float64, MaxPhred+1)
	weights := make([]float64, MaxPhred+1)
	for s := range scores {
		scores[s] = float64(s)
	}

	for i := 0; i < p.ReadLength; i++ {
		counts := p.QualityCounts[i]
		var posTotal uint64
		var q20, q30 uint64
		for s, c := range counts {
			posTotal += c
			if s >= 20 {
				q20 += c
			}
			if s >= 30 {
				q30 += c
			}
			weights[s] = float64(c)
		}
		out.Q20 += q20
		out.Q30 += q30

		ps := PositionStat{
			A: p.BaseCounts[i][fqrecord.BaseA],
			C: p.BaseCounts[i][fqrecord.BaseC],
			G: p.BaseCounts[i][fqrecord.BaseG],
			T: p.BaseCounts[i][fqrecord.BaseT],
			N: p.BaseCounts[i][fqrecord.BaseN],
		}
		out.ATotal += ps.A
		out.CTotal += ps.C
		out.GTotal += ps.G
		out.TTotal += ps.T
		out.NTotal += ps.N

		if posTotal > 0 {
			ps.AvgQual = stat.Mean(scores, weights)
			ps.ErrRate = weightedErrorRate(counts, posTotal)
		}
		out.PerPosition[i] = ps
	}
	return out
}

// weightedErrorRate computes (sum_s counts[s] * 10^(-s/10)) / recordCount
// above the Phred offset.
func weightedErrorRate(counts []uint64, recordCount uint64) float64 {
	var sum float64
	for s, c := range counts {
		if c == 0 {
			continue
		}
		sum += float64(c) * math.Pow(10, -float64(s)/10)
	}
	return sum / float64(recordCount)
}

// GCCount returns the combined G+C base count across all positions.
func (f FinalStat) GCCount() uint64 { return f.GTotal + f.CTotal }
