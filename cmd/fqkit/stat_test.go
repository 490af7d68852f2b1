package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessup/fqkit/internal/fqerr"
)

// S4 — three uniform ACGT/IIII records through the whole stat command.
func TestStatEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fastq")
	out := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(in,
		[]byte("@r1\nACGT\n+\nIIII\n@r2\nACGT\n+\nIIII\n@r3\nACGT\n+\nIIII\n"), 0o644))

	cmd := newStatCmd()
	cmd.SetArgs([]string{"--input", in, "--output", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	assert.Equal(t, "#Name\tin.fastq", lines[0])
	assert.Equal(t, "#PhredQual\t33", lines[1])
	assert.Equal(t, "#ReadNum\t3", lines[2])
	assert.Equal(t, "#ReadLength\t4", lines[3])
	assert.Equal(t, "#BaseCount\t12", lines[4])
	assert.Equal(t, "#Q20(>=20)\t12\t100.00%", lines[5])
	assert.Equal(t, "#Q30(>=30)\t12\t100.00%", lines[6])
	assert.Equal(t, "#GC\t6\t50.00%", lines[12])
	assert.Equal(t, "1\t3\t0\t0\t0\t0\t40.00\t0.000100", lines[14])
}

func TestStatRejectsVariableLengthReads(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.fastq")
	out := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(in,
		[]byte("@r1\nACGT\n+\nIIII\n@r2\nACGTAC\n+\nIIIIII\n"), 0o644))

	cmd := newStatCmd()
	cmd.SetArgs([]string{"--input", in, "--output", out})
	err := cmd.Execute()
	require.Error(t, err)
	kind, ok := fqerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, fqerr.Unsupported, kind)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
