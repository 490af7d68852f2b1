package main

import (
	"os"
	"os/signal"

	"github.com/lessup/fqkit/internal/fqpipeline"
)

// installSignalCancel arranges for the first SIGINT to call pl.Cancel(),
// the CLI's side of cooperative cancellation. A second SIGINT exits the
// process immediately with status 130, so it can still be stopped if a
// stage is stuck.
func installSignalCancel(pl *fqpipeline.Pipeline) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		pl.Cancel()
		<-ch
		os.Exit(130)
	}()
}
