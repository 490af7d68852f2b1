package fqscheme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFastq(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.fastq")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInferPhred33(t *testing.T) {
	path := writeFastq(t, "@r1\nACGT\n+\nIIII\n@r2\nACGT\n+\n!!!!\n")
	scheme, err := Infer(path, DefaultSampleSize)
	require.NoError(t, err)
	assert.Equal(t, 33, scheme.Offset)
	assert.False(t, scheme.FallbackUsed)
	assert.True(t, scheme.IsFixedLength)
	assert.Equal(t, 4, scheme.ReadLength)
}

func TestInferPhred64(t *testing.T) {
	// 'h' = 104, above both the Phred+33 ceiling and the Phred+64 floor.
	path := writeFastq(t, "@r1\nACGT\n+\nhhhh\n")
	scheme, err := Infer(path, DefaultSampleSize)
	require.NoError(t, err)
	assert.Equal(t, 64, scheme.Offset)
}

func TestInferVariableLengthIsDetected(t *testing.T) {
	path := writeFastq(t, "@r1\nACGT\n+\nIIII\n@r2\nACGTAC\n+\nIIIIII\n")
	scheme, err := Infer(path, DefaultSampleSize)
	require.NoError(t, err)
	assert.False(t, scheme.IsFixedLength)
}

func TestInferEmptyInput(t *testing.T) {
	path := writeFastq(t, "")
	scheme, err := Infer(path, DefaultSampleSize)
	require.NoError(t, err)
	assert.Equal(t, 33, scheme.Offset)
	assert.True(t, scheme.IsFixedLength)
}
