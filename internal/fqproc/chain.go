package fqproc

import "github.com/lessup/fqkit/internal/fqrecord"

// FilterChain is the ordered Mutator/Predicate pipeline `filter` runs
// over every record in a batch: mutators first (any Dropped outcome
// short-circuits the rest), then predicates in order (the first false
// short-circuits).
type FilterChain struct {
	Mutators   []Mutator
	Predicates []Predicate
}

// Empty reports whether the chain has no stages (the identity filter
// case).
func (c *FilterChain) Empty() bool {
	return len(c.Mutators) == 0 && len(c.Predicates) == 0
}

// Apply runs the chain over every record in batch, marking survivors and
// drops, then compacts the batch so surviving descriptors occupy its
// front in their original relative order.
func (c *FilterChain) Apply(batch *fqrecord.RecordBatch) {
	for i := 0; i < batch.Len(); i++ {
		rec := batch.Record(i)
		if c.decide(rec) {
			continue
		}
	}
	batch.Compact()
}

// decide applies the chain to a single record, returning true if it was
// dropped.
func (c *FilterChain) decide(rec fqrecord.FqRecord) bool {
	for _, m := range c.Mutators {
		if m.Apply(rec) == Dropped {
			rec.Drop()
			return true
		}
	}
	for _, p := range c.Predicates {
		if !p.Test(rec) {
			rec.Drop()
			return true
		}
	}
	return false
}
