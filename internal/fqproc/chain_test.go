package fqproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 — identity filter: an empty chain keeps every record, in order.
func TestEmptyChainKeepsEverything(t *testing.T) {
	batch := manyRecordBatch(t, [][2]string{
		{"ACGT", "IIII"},
		{"ACGN", "!!!!"},
		{"AAAA", "####"},
	})

	chain := &FilterChain{}
	require.True(t, chain.Empty())
	chain.Apply(batch)

	require.Equal(t, 3, batch.Len())
	assert.Equal(t, "r0", string(batch.Record(0).Name()))
	assert.Equal(t, "r1", string(batch.Record(1).Name()))
	assert.Equal(t, "r2", string(batch.Record(2).Name()))
}

// S2 — min-quality filter keeps only the one record whose mean quality
// clears the threshold.
func TestChainMinQualityFiltersAndPreservesOrder(t *testing.T) {
	batch := manyRecordBatch(t, [][2]string{
		{"ACGT", "IIII"}, // mean 40, passes
		{"ACGN", "!!!!"}, // mean 0, dropped
		{"AAAA", "####"}, // mean 2, dropped
	})

	chain := &FilterChain{Predicates: []Predicate{MinQuality{Threshold: 30, Offset: 33}}}
	chain.Apply(batch)

	require.Equal(t, 1, batch.Len())
	assert.Equal(t, "r0", string(batch.Record(0).Name()))
}

func TestChainMutatorDropShortCircuitsPredicates(t *testing.T) {
	batch := manyRecordBatch(t, [][2]string{
		{"ACGTACGT", "!!!!!!!!"}, // trims to nothing, dropped by the mutator
	})

	chain := &FilterChain{
		Mutators:   []Mutator{QualityTrimmer{Threshold: 30, MinLen: 1, Mode: TrimBoth, Offset: 33}},
		Predicates: []Predicate{MinLength{N: 0}},
	}
	chain.Apply(batch)

	assert.Equal(t, 0, batch.Len())
}
