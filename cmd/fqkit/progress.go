package main

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// newProgressFunc wires schollz/progressbar/v3 into RunConfig.OnProgress.
// The core never imports a progress bar library itself; it only calls
// this closure once per committed batch.
func newProgressFunc(enabled bool, label string) func(int) {
	if !enabled {
		return nil
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(batchesDone int) {
		_ = bar.Set(batchesDone)
	}
}
