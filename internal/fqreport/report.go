// Package fqreport renders the `stat` command's plain-text report, a
// fixed, mechanical byte-level layout.
package fqreport

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/lessup/fqkit/internal/fqproc"
)

// Write renders fs for a source file named name (basename only is used
// in the #Name line) and an encoding offset (33 or 64) to w.
func Write(w io.Writer, name string, offset int, fs fqproc.FinalStat) error {
	bw := bufio.NewWriter(w)

	pct := func(n, total uint64) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}

	fmt.Fprintf(bw, "#Name\t%s\n", filepath.Base(name))
	fmt.Fprintf(bw, "#PhredQual\t%d\n", offset)
	fmt.Fprintf(bw, "#ReadNum\t%d\n", fs.RecordCount)
	fmt.Fprintf(bw, "#ReadLength\t%d\n", fs.ReadLength)
	fmt.Fprintf(bw, "#BaseCount\t%d\n", fs.TotalBases)
	fmt.Fprintf(bw, "#Q20(>=20)\t%d\t%.2f%%\n", fs.Q20, pct(fs.Q20, fs.TotalBases))
	fmt.Fprintf(bw, "#Q30(>=30)\t%d\t%.2f%%\n", fs.Q30, pct(fs.Q30, fs.TotalBases))
	fmt.Fprintf(bw, "#A\t%d\t%.2f%%\n", fs.ATotal, pct(fs.ATotal, fs.TotalBases))
	fmt.Fprintf(bw, "#C\t%d\t%.2f%%\n", fs.CTotal, pct(fs.CTotal, fs.TotalBases))
	fmt.Fprintf(bw, "#G\t%d\t%.2f%%\n", fs.GTotal, pct(fs.GTotal, fs.TotalBases))
	fmt.Fprintf(bw, "#T\t%d\t%.2f%%\n", fs.TTotal, pct(fs.TTotal, fs.TotalBases))
	fmt.Fprintf(bw, "#N\t%d\t%.2f%%\n", fs.NTotal, pct(fs.NTotal, fs.TotalBases))
	gc := fs.GCCount()
	fmt.Fprintf(bw, "#GC\t%d\t%.2f%%\n", gc, pct(gc, fs.TotalBases))
	fmt.Fprintf(bw, "#Pos\tA\tC\tG\tT\tN\tAvgQual\tErrRate\n")

	for i, ps := range fs.PerPosition {
		fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%.6f\n",
			i+1, ps.A, ps.C, ps.G, ps.T, ps.N, ps.AvgQual, ps.ErrRate)
	}

	return bw.Flush()
}
