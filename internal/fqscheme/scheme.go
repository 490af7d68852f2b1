// Package fqscheme infers the Phred quality-score encoding and read
// length uniformity of a FASTQ file by sampling its head. It is
// deliberately decoupled from the batch/arena machinery in
// internal/fqrecord: inference only needs min/max quality bytes and
// lengths, not zero-copy record views.
package fqscheme

import (
	"bufio"
	"strings"

	"github.com/lessup/fqkit/internal/fqerr"
	"github.com/lessup/fqkit/internal/fqio"
)

// DefaultSampleSize is the default number of records sampled from the
// head of the input.
const DefaultSampleSize = 10000

// Scheme is the inferred quality encoding and length profile of a FASTQ
// file.
type Scheme struct {
	Offset        int  // 33 or 64
	IsFixedLength bool
	ReadLength    int // max sampled length; meaningful only if IsFixedLength
	FallbackUsed  bool
}

// Infer opens a fresh ByteSource on path and samples up to sampleSize
// records to deduce the Scheme, per the rule:
//
//	max_byte <= 73        -> Phred+33
//	min_byte >= 64         -> Phred+64
//	otherwise              -> Phred+33 (fallback, FallbackUsed=true)
func Infer(path string, sampleSize int) (Scheme, error) {
	src, err := fqio.OpenSource(path)
	if err != nil {
		return Scheme{}, err
	}
	defer src.Close()

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	minByte := byte(0xFF)
	maxByte := byte(0x00)
	minLen, maxLen := -1, -1
	sampled := 0

	for sampled < sampleSize && scanner.Scan() {
		header := strings.TrimSuffix(scanner.Text(), "\r")
		if header == "" {
			continue
		}
		if header[0] != '@' {
			return Scheme{}, fqerr.Wrapf(fqerr.Format, "expected '@' header while sampling").WithPath(path)
		}
		if !scanner.Scan() {
			break
		}
		seq := strings.TrimSuffix(scanner.Text(), "\r")
		if !scanner.Scan() {
			break
		}
		if !scanner.Scan() {
			break
		}
		qual := strings.TrimSuffix(scanner.Text(), "\r")

		if len(qual) != len(seq) {
			return Scheme{}, fqerr.Wrapf(fqerr.Format, "sequence/quality length mismatch while sampling").WithPath(path)
		}

		for i := 0; i < len(qual); i++ {
			b := qual[i]
			if b < minByte {
				minByte = b
			}
			if b > maxByte {
				maxByte = b
			}
		}
		if minLen == -1 || len(qual) < minLen {
			minLen = len(qual)
		}
		if len(qual) > maxLen {
			maxLen = len(qual)
		}
		sampled++
	}
	if err := scanner.Err(); err != nil {
		return Scheme{}, fqerr.New(fqerr.Io, err).WithPath(path)
	}

	if sampled == 0 {
		return Scheme{Offset: 33, IsFixedLength: true, ReadLength: 0}, nil
	}

	scheme := Scheme{
		IsFixedLength: minLen == maxLen,
		ReadLength:    maxLen,
	}
	switch {
	case maxByte <= 73:
		scheme.Offset = 33
	case minByte >= 64:
		scheme.Offset = 64
	default:
		scheme.Offset = 33
		scheme.FallbackUsed = true
	}
	return scheme, nil
}
