package main

import (
	"regexp"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqpipeline"
	"github.com/lessup/fqkit/internal/fqproc"
	"github.com/lessup/fqkit/internal/fqscheme"
)

func newFilterCmd() *cobra.Command {
	var (
		input, output   string
		threads         int
		qualityEncoding int
		minQuality      float64
		minLength       int
		maxLength       int
		maxNRatio       float64
		maxAmbiguous    int
		nameRegexp      string
		trimQuality     float64
		trimMode        string
		headCrop        int
		tailCrop        int
		preservePlus    bool
		lenient         bool
		progress        bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter and trim FASTQ records, preserving input order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" || output == "" {
				return fqerr.Wrapf(fqerr.Config, "--input and --output are required")
			}
			if threads < 0 {
				return fqerr.Wrapf(fqerr.Config, "--threads must be >= 0")
			}
			if cmd.Flags().Changed("min-length") && cmd.Flags().Changed("max-length") && minLength > maxLength {
				return fqerr.Wrapf(fqerr.Config, "--min-length (%d) > --max-length (%d)", minLength, maxLength)
			}
			if qualityEncoding != 0 && qualityEncoding != 33 && qualityEncoding != 64 {
				return fqerr.Wrapf(fqerr.Config, "--quality-encoding must be 33 or 64")
			}
			switch trimMode {
			case "both", "five", "three":
			default:
				return fqerr.Wrapf(fqerr.Config, "--trim-mode must be one of both, five, three")
			}

			offset := qualityEncoding
			if offset == 0 {
				scheme, err := fqscheme.Infer(input, fqscheme.DefaultSampleSize)
				if err != nil {
					return err
				}
				offset = scheme.Offset
				if scheme.FallbackUsed {
					logger.Warnf("could not confidently infer quality encoding for %s; falling back to Phred+33", input)
				} else {
					logger.Infof("inferred quality offset %d", offset)
				}
			}

			chain := &fqproc.FilterChain{}

			if cmd.Flags().Changed("head-crop") {
				chain.Mutators = append(chain.Mutators, fqproc.HeadCrop{N: headCrop})
			}
			if cmd.Flags().Changed("tail-crop") {
				chain.Mutators = append(chain.Mutators, fqproc.TailCrop{N: tailCrop})
			}
			if cmd.Flags().Changed("trim-quality") {
				chain.Mutators = append(chain.Mutators, fqproc.QualityTrimmer{
					Threshold: int(trimQuality),
					MinLen:    minLength,
					Mode:      trimModeFrom(trimMode),
					Offset:    offset,
				})
			}
			if cmd.Flags().Changed("min-quality") {
				chain.Predicates = append(chain.Predicates, fqproc.MinQuality{Threshold: minQuality, Offset: offset})
			}
			if cmd.Flags().Changed("min-length") {
				chain.Predicates = append(chain.Predicates, fqproc.MinLength{N: minLength})
			}
			if cmd.Flags().Changed("max-length") {
				chain.Predicates = append(chain.Predicates, fqproc.MaxLength{N: maxLength})
			}
			if cmd.Flags().Changed("max-n-ratio") {
				chain.Predicates = append(chain.Predicates, fqproc.MaxNRatio{Ratio: maxNRatio})
			}
			if cmd.Flags().Changed("max-ambiguous") {
				chain.Predicates = append(chain.Predicates, fqproc.MaxAmbiguous{N: maxAmbiguous})
			}
			if cmd.Flags().Changed("name-regexp") {
				re, err := regexp.Compile(nameRegexp)
				if err != nil {
					return fqerr.Wrapf(fqerr.Config, "--name-regexp: %s", err)
				}
				chain.Predicates = append(chain.Predicates, fqproc.NameRegexp{Pattern: re})
			}

			workers := threads
			if workers == 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			cfg := fqpipeline.RunConfig{
				InputPath:    input,
				OutputPath:   output,
				Workers:      workers,
				Lenient:      lenient,
				PreservePlus: preservePlus,
				Mode:         fqpipeline.ModeFilter,
				Chain:        chain,
				OnProgress:   newProgressFunc(progress, "filter"),
				Logger:       logger,
			}

			pl := fqpipeline.New(cfg)
			installSignalCancel(pl)

			stats, err := pl.Run()
			if err != nil {
				return err
			}
			logger.Infof("kept %d of %d records in %s", stats.RecordsOut, stats.RecordsIn, stats.Elapsed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input FASTQ path (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output FASTQ path (required)")
	cmd.Flags().IntVarP(&threads, "threads", "t", 1, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&qualityEncoding, "quality-encoding", 0, "Phred offset, 33 or 64 (default: inferred)")
	cmd.Flags().Float64Var(&minQuality, "min-quality", 0, "drop records with mean Phred below this")
	cmd.Flags().IntVar(&minLength, "min-length", 0, "drop records shorter than this")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "drop records longer than this")
	cmd.Flags().Float64Var(&maxNRatio, "max-n-ratio", 1, "drop records with ambiguous-base fraction above this")
	cmd.Flags().IntVar(&maxAmbiguous, "max-ambiguous", 0, "drop records with more than this many ambiguous bases")
	cmd.Flags().StringVar(&nameRegexp, "name-regexp", "", "keep only records whose name matches this regexp")
	cmd.Flags().Float64Var(&trimQuality, "trim-quality", 0, "trim bases below this Phred score from the read ends")
	cmd.Flags().StringVar(&trimMode, "trim-mode", "both", "which end(s) --trim-quality trims: both, five, three")
	cmd.Flags().IntVar(&headCrop, "head-crop", 0, "unconditionally remove this many bases from the start")
	cmd.Flags().IntVar(&tailCrop, "tail-crop", 0, "unconditionally remove this many bases from the end")
	cmd.Flags().BoolVar(&preservePlus, "preserve-plus", false, "retain the plus-line comment in output")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept sequence bytes outside ACGTN instead of failing")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress spinner on stderr")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func trimModeFrom(s string) fqproc.TrimMode {
	switch s {
	case "five":
		return fqproc.TrimFivePrime
	case "three":
		return fqproc.TrimThreePrime
	default:
		return fqproc.TrimBoth
	}
}
