package main

import (
	"fmt"
	"os"

	"github.com/lessup/fqkit/internal/fqerr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if fqerr.IsCanceled(err) {
			fmt.Fprintln(os.Stderr, "canceled")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCodeFor(err))
	}
}
