package fqrecord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessup/fqkit/internal/fqerr"
)

func fillAll(t *testing.T, p *Parser, batchCap, arenaBytes int) []*RecordBatch {
	t.Helper()
	var batches []*RecordBatch
	for {
		b := newRecordBatch(batchCap, arenaBytes)
		added, eof, err := p.Fill(b)
		require.NoError(t, err)
		if added > 0 {
			batches = append(batches, b)
		}
		if eof {
			break
		}
	}
	return batches
}

func names(batches []*RecordBatch) []string {
	var out []string
	for _, b := range batches {
		for _, r := range b.Records() {
			out = append(out, string(r.Name()))
		}
	}
	return out
}

// S1 — identity round trip: three well-formed records parse cleanly and
// in order.
func TestParserIdentity(t *testing.T) {
	input := "@r1\nACGT\n+\nIIII\n@r2\nACGN\n+\n!!!!\n@r3\nAAAA\n+\n####\n"
	p := NewParser(strings.NewReader(input), "test", false)
	batches := fillAll(t, p, 10, 1<<16)
	assert.Equal(t, []string{"r1", "r2", "r3"}, names(batches))
}

func TestParserTrailingNewlineOptional(t *testing.T) {
	input := "@r1\nACGT\n+\nIIII" // no trailing newline
	p := NewParser(strings.NewReader(input), "test", false)
	batches := fillAll(t, p, 10, 1<<16)
	require.Len(t, batches, 1)
	recs := batches[0].Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "ACGT", string(recs[0].Sequence()))
}

func TestParserCRLFTolerated(t *testing.T) {
	input := "@r1\r\nACGT\r\n+\r\nIIII\r\n"
	p := NewParser(strings.NewReader(input), "test", false)
	batches := fillAll(t, p, 10, 1<<16)
	require.Len(t, batches, 1)
	recs := batches[0].Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "ACGT", string(recs[0].Sequence()))
	assert.Equal(t, "IIII", string(recs[0].Quality()))
}

func TestParserUnknownSequenceByteIsFatal(t *testing.T) {
	input := "@r1\nACXT\n+\nIIII\n"
	p := NewParser(strings.NewReader(input), "test", false)
	b := newRecordBatch(10, 1<<16)
	_, _, err := p.Fill(b)
	require.Error(t, err)
	kind, ok := fqerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, fqerr.Format, kind)
}

func TestParserLenientAcceptsInvalidByteInsteadOfFailing(t *testing.T) {
	input := "@r1\nACXT\n+\nIIII\n"
	p := NewParser(strings.NewReader(input), "test", true)
	batches := fillAll(t, p, 10, 1<<16)
	require.Len(t, batches, 1)
	assert.Equal(t, "ACXT", string(batches[0].Records()[0].Sequence()))
}

func TestParserTruncatedRecordIsFatal(t *testing.T) {
	input := "@r1\nACGT\n+\nII" // quality shorter than sequence, then EOF
	p := NewParser(strings.NewReader(input), "test", false)
	b := newRecordBatch(10, 1<<16)
	_, _, err := p.Fill(b)
	require.Error(t, err)
}

func TestParserOversizedRecordIsResourceError(t *testing.T) {
	input := "@r1\n" + strings.Repeat("A", 1000) + "\n+\n" + strings.Repeat("I", 1000) + "\n"
	p := NewParser(strings.NewReader(input), "test", false)
	b := newRecordBatch(10, 64) // arena far smaller than one record
	_, _, err := p.Fill(b)
	require.Error(t, err)
	kind, ok := fqerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, fqerr.Resource, kind)
}

// The stream ending exactly while a record is spilled must not lose
// that record: Fill must keep reporting eof=false until the spill has
// been replayed into a fresh batch.
func TestParserSpillAtEOFIsNotLost(t *testing.T) {
	input := "@r1\nAC\n+\nII\n@r2\nAC\n+\nII\n@r3\nAC\n+\nII" // no trailing newline
	p := NewParser(strings.NewReader(input), "test", false)
	batches := fillAll(t, p, 10, 16)
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"r1", "r2", "r3"}, names(batches))
}

func TestParserCarriesPendingRecordAcrossBatches(t *testing.T) {
	input := "@r1\nAC\n+\nII\n@r2\nAC\n+\nII\n@r3\nAC\n+\nII\n"
	p := NewParser(strings.NewReader(input), "test", false)
	// Each record consumes 6 arena bytes; a 16-byte arena fits two but
	// not three, forcing the parser to carry the third over to a second
	// batch via p.spill.
	batches := fillAll(t, p, 10, 16)
	require.Len(t, batches, 2)
	assert.Equal(t, 2, batches[0].Len())
	assert.Equal(t, 1, batches[1].Len())
	assert.Equal(t, []string{"r1", "r2", "r3"}, names(batches))
}
