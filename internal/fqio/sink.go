package fqio

import (
	"bufio"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	"github.com/lessup/fqkit/internal/fqerr"
)

// ByteSink is an ordered byte-stream writer with a compressor chosen by
// the output path's filename suffix.
type ByteSink struct {
	path         string
	file         *os.File
	buffered     *bufio.Writer
	encoder      io.WriteCloser // nil for plain output
	bytesWritten int64
}

// CreateSink creates (or truncates) path and attaches a compressor for
// its suffix. A path of "-" writes stdout.
func CreateSink(path string) (*ByteSink, error) {
	if path == "-" {
		return &ByteSink{path: path, buffered: bufio.NewWriterSize(os.Stdout, 1<<16)}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fqerr.New(fqerr.Io, err).WithPath(path)
	}

	sink := &ByteSink{path: path, file: f}
	switch formatFromSuffix(path) {
	case formatGzip:
		gz := pgzip.NewWriter(f)
		sink.encoder = gz
		sink.buffered = bufio.NewWriterSize(gz, 1<<16)
	case formatBzip2:
		bz, err := bzip2.NewWriter(f, nil)
		if err != nil {
			_ = f.Close()
			return nil, fqerr.New(fqerr.Io, err).WithPath(path)
		}
		sink.encoder = bz
		sink.buffered = bufio.NewWriterSize(bz, 1<<16)
	case formatXz:
		xzw, err := xz.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, fqerr.New(fqerr.Io, err).WithPath(path)
		}
		sink.encoder = xzw
		sink.buffered = bufio.NewWriterSize(xzw, 1<<16)
	default:
		sink.buffered = bufio.NewWriterSize(f, 1<<16)
	}
	return sink, nil
}

// Write implements io.Writer.
func (s *ByteSink) Write(p []byte) (int, error) {
	n, err := s.buffered.Write(p)
	s.bytesWritten += int64(n)
	if err != nil {
		return n, fqerr.New(fqerr.Io, err).WithPath(s.path)
	}
	return n, nil
}

// BytesWritten returns the total number of (pre-compression) bytes
// written to this sink so far, the figure PipelineStats.BytesOut is
// taken from.
func (s *ByteSink) BytesWritten() int64 { return s.bytesWritten }

// Close flushes the buffer, the compressor (if any), and the underlying
// file, in that order, so cancellation never leaves a torn compressed
// stream.
func (s *ByteSink) Close() error {
	var firstErr error
	if err := s.buffered.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if s.encoder != nil {
		if err := s.encoder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fqerr.New(fqerr.Io, firstErr).WithPath(s.path)
	}
	return nil
}

// Path returns the sink's file path ("-" for stdout).
func (s *ByteSink) Path() string { return s.path }

// Discard closes and removes the output file without flushing pending
// writes, used when a run fails: the output file ends up deleted rather
// than holding a partial result.
func (s *ByteSink) Discard() error {
	if s.file == nil {
		return nil
	}
	_ = s.file.Close()
	if s.path == "-" {
		return nil
	}
	return os.Remove(s.path)
}
