package fqproc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lessup/fqkit/internal/fqrecord"
)

// oneRecordBatch parses a single record into a fresh RecordBatch via the
// real Parser/BatchPool, the only exported way to construct one outside
// package fqrecord.
func oneRecordBatch(t *testing.T, seq, qual string) *fqrecord.RecordBatch {
	t.Helper()
	input := fmt.Sprintf("@r\n%s\n+\n%s\n", seq, qual)
	pool := fqrecord.NewBatchPool(1, 4, 256)
	defer pool.Close()
	batch, ok := pool.Acquire()
	require.True(t, ok)

	p := fqrecord.NewParser(strings.NewReader(input), "test", false)
	added, _, err := p.Fill(batch)
	require.NoError(t, err)
	require.Equal(t, 1, added)
	return batch
}

// manyRecordBatch parses several records (same quality/sequence length
// pairs) into one RecordBatch, named r0, r1, ...
func manyRecordBatch(t *testing.T, pairs [][2]string) *fqrecord.RecordBatch {
	t.Helper()
	var sb strings.Builder
	for i, pr := range pairs {
		fmt.Fprintf(&sb, "@r%d\n%s\n+\n%s\n", i, pr[0], pr[1])
	}
	pool := fqrecord.NewBatchPool(1, len(pairs)+1, 4096)
	defer pool.Close()
	batch, ok := pool.Acquire()
	require.True(t, ok)

	p := fqrecord.NewParser(strings.NewReader(sb.String()), "test", false)
	added, _, err := p.Fill(batch)
	require.NoError(t, err)
	require.Equal(t, len(pairs), added)
	return batch
}
