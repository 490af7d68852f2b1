// Package fqio provides the ByteSource/ByteSink transparent
// decompression layer: the core only ever sees an io.Reader/io.Writer,
// never a compression format name.
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

// ByteSource is an ordered byte-stream reader with format auto-detection
// from the leading magic bytes of the file. It closes both the decoder
// and the underlying file on Close.
type ByteSource struct {
	path      string
	file      *os.File
	reader    io.Reader
	closer    io.Closer
	bytesRead int64
}

// OpenSource opens path and attaches a decompressor chosen by the first
// bytes of the file. A path of "-" reads stdin as a plain byte stream
// (no magic-byte sniffing: stdin is read as a single uncompressed stream).
func OpenSource(path string) (*ByteSource, error) {
	if path == "-" {
		return &ByteSource{path: path, reader: os.Stdin}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fqerr.New(fqerr.Io, err).WithPath(path)
	}

	buffered := bufio.NewReaderSize(f, 1<<16)
	peek, _ := buffered.Peek(4)

	src := &ByteSource{path: path, file: f}
	switch detectFormat(peek) {
	case formatGzip:
		gz, err := pgzip.NewReader(buffered)
		if err != nil {
			_ = f.Close()
			return nil, fqerr.New(fqerr.Io, err).WithPath(path)
		}
		src.reader = gz
		src.closer = gz
	case formatBzip2:
		bz, err := bzip2.NewReader(buffered, nil)
		if err != nil {
			_ = f.Close()
			return nil, fqerr.New(fqerr.Io, err).WithPath(path)
		}
		src.reader = bz
		src.closer = bz
	case formatXz:
		xzr, err := xz.NewReader(buffered)
		if err != nil {
			_ = f.Close()
			return nil, fqerr.New(fqerr.Io, err).WithPath(path)
		}
		src.reader = xzr
	default:
		src.reader = buffered
	}
	return src, nil
}

// Read implements io.Reader. Partial reads are not errors; only a
// returned 0-byte/io.EOF pair ends the stream.
func (s *ByteSource) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	s.bytesRead += int64(n)
	if err != nil && err != io.EOF {
		return n, fqerr.New(fqerr.Io, err).WithPath(s.path)
	}
	return n, err
}

// BytesRead returns the total number of decompressed bytes read from
// this source so far, the figure PipelineStats.BytesIn is taken from.
func (s *ByteSource) BytesRead() int64 { return s.bytesRead }

// Close releases the decoder and the underlying file handle.
func (s *ByteSource) Close() error {
	var firstErr error
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
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

// Path returns the source's file path ("-" for stdin).
func (s *ByteSource) Path() string { return s.path }
