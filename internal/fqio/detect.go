package fqio

import "strings"

// format identifies the compression framing of a byte stream.
type format int

const (
	formatPlain format = iota
	formatGzip
	formatBzip2
	formatXz
)

var (
	gzipMagic  = []byte{0x1F, 0x8B}
	bzip2Magic = []byte{0x42, 0x5A}
	xzMagic    = []byte{0xFD, 0x37, 0x7A, 0x58}
)

// detectFormat inspects up to the first 4 bytes of peek and classifies
// them by magic number.
func detectFormat(peek []byte) format {
	switch {
	case hasPrefix(peek, xzMagic):
		return formatXz
	case hasPrefix(peek, gzipMagic):
		return formatGzip
	case hasPrefix(peek, bzip2Magic):
		return formatBzip2
	default:
		return formatPlain
	}
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// formatFromSuffix classifies an output path by its filename extension,
// for ByteSink.
func formatFromSuffix(path string) format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return formatGzip
	case strings.HasSuffix(lower, ".bz2"):
		return formatBzip2
	case strings.HasSuffix(lower, ".xz"):
		return formatXz
	default:
		return formatPlain
	}
}
