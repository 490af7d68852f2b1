// Package fqlog defines the logging seam the core takes as an injected
// value: core packages never import a logging library directly; they
// accept a Logger, and the CLI wires in a github.com/shenwei356/go-logging
// backed implementation, the same logger github.com/shenwei356/kmcp uses
// for this family of FASTQ/FASTA command-line tools.
package fqlog

import (
	"io"

	logging "github.com/shenwei356/go-logging"
)

// Logger is the minimal surface the CLI layer needs; core packages take
// this interface (or a narrower function type) rather than a concrete
// logging library type.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// goLogging adapts github.com/shenwei356/go-logging's *Logger to Logger.
type goLogging struct {
	l *logging.Logger
}

// New builds a Logger writing to w, formatted the way kmcp configures
// go-logging: timestamp, a four-letter level, and the message.
func New(name string, w io.Writer) Logger {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:15:04:05} [%{level:.4s}] %{message}`,
	))
	logging.SetBackend(formatted)
	return &goLogging{l: logging.MustGetLogger(name)}
}

// Discard returns a Logger that drops every message, used by default
// when the CLI is run without --verbose.
func Discard() Logger { return discardLogger{} }

func (g *goLogging) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g *goLogging) Warnf(format string, args ...interface{})  { g.l.Warningf(format, args...) }
func (g *goLogging) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }

type discardLogger struct{}

func (discardLogger) Infof(string, ...interface{})  {}
func (discardLogger) Warnf(string, ...interface{})  {}
func (discardLogger) Errorf(string, ...interface{}) {}
