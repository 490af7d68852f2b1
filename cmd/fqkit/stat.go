package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqpipeline"
	"github.com/lessup/fqkit/internal/fqproc"
	"github.com/lessup/fqkit/internal/fqreport"
	"github.com/lessup/fqkit/internal/fqscheme"
)

func newStatCmd() *cobra.Command {
	var (
		input    string
		output   string
		threads  int
		lenient  bool
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Report per-position quality and base composition statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || output == "" {
				return fqerr.Wrapf(fqerr.Config, "--input and --output are required")
			}
			if threads < 0 {
				return fqerr.Wrapf(fqerr.Config, "--threads must be >= 0")
			}

			scheme, err := fqscheme.Infer(input, fqscheme.DefaultSampleSize)
			if err != nil {
				return err
			}
			if !scheme.IsFixedLength {
				return fqerr.Wrapf(fqerr.Unsupported, "stat requires uniform read length; input has variable-length reads").WithPath(input)
			}
			if scheme.FallbackUsed {
				logger.Warnf("could not confidently infer quality encoding for %s; falling back to Phred+33", input)
			} else {
				logger.Infof("inferred quality offset %d, read length %d", scheme.Offset, scheme.ReadLength)
			}

			workers := threads
			if workers == 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			cfg := fqpipeline.RunConfig{
				InputPath:  input,
				Workers:    workers,
				Lenient:    lenient,
				Mode:       fqpipeline.ModeStat,
				Stat:       fqproc.StatAccumulator{Offset: scheme.Offset, ReadLength: scheme.ReadLength},
				OnProgress: newProgressFunc(progress, "stat"),
				Logger:     logger,
			}

			pl := fqpipeline.New(cfg)
			installSignalCancel(pl)

			stats, err := pl.Run()
			if err != nil {
				return err
			}
			logger.Infof("processed %d records in %s", stats.RecordsIn, stats.Elapsed)

			out, err := os.Create(output)
			if err != nil {
				return fqerr.New(fqerr.Io, err).WithPath(output)
			}
			defer out.Close()
			return fqreport.Write(out, input, scheme.Offset, *stats.Stat)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input FASTQ path (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output report path (required)")
	cmd.Flags().IntVarP(&threads, "threads", "t", 1, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept sequence bytes outside ACGTN instead of failing")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress spinner on stderr")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}
