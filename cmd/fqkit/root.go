package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqlog"
)

// version is set by the release build; "dev" otherwise.
var version = "dev"

var verbose bool

var logger fqlog.Logger = fqlog.Discard()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fqkit",
		Short:         "fqkit inspects and filters FASTQ files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = fqlog.New("fqkit", os.Stderr)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	cmd.AddCommand(newStatCmd(), newFilterCmd())
	return cmd
}

// exitCodeFor maps a pipeline error to a process exit code: 130 for a
// canceled run (SIGINT), 1 for every other error.
func exitCodeFor(err error) int {
	if fqerr.IsCanceled(err) {
		return 130
	}
	return 1
}
