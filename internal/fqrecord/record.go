// Package fqrecord is the core data model: the FqRecord view, the
// RecordBatch arena it is backed by, and the BatchPool that recycles
// batches across a pipeline run. This is the zero-copy heart of the
// zero-copy design that replaces reference-counted shared buffers with
// arena-owned offset/length descriptors.
package fqrecord

// Base classifies a single sequence byte for per-position base tallies.
type Base int

const (
	BaseA Base = iota
	BaseC
	BaseG
	BaseT
	BaseN
	baseCount
)

// ClassifyBase maps a sequence byte (case-insensitive) to its Base
// column.
func ClassifyBase(b byte) Base {
	switch b {
	case 'A', 'a':
		return BaseA
	case 'C', 'c':
		return BaseC
	case 'G', 'g':
		return BaseG
	case 'T', 't':
		return BaseT
	default:
		return BaseN
	}
}

// span is an (offset, length) range into a RecordBatch's arena.
type span struct {
	offset int32
	length int32
}

// descriptor is the per-record entry a RecordBatch keeps alongside its
// arena: four spans, one per FASTQ line field.
type descriptor struct {
	name        span
	seq         span
	plus        span
	qual        span
	dropped     bool
	originalLen int32 // sequence length as parsed, before any mutator trims it
}

// FqRecord is a lightweight view over one descriptor in a RecordBatch. It
// never owns bytes; every accessor slices the batch's arena. Copying an
// FqRecord copies only the view, not the underlying data.
type FqRecord struct {
	batch *RecordBatch
	index int
}

func (r FqRecord) desc() *descriptor { return &r.batch.descriptors[r.index] }

// Name returns the identifier line, without the leading '@'.
func (r FqRecord) Name() []byte { return r.batch.slice(r.desc().name) }

// Sequence returns the nucleotide bases.
func (r FqRecord) Sequence() []byte { return r.batch.slice(r.desc().seq) }

// PlusTag returns the (possibly empty) comment following '+'.
func (r FqRecord) PlusTag() []byte { return r.batch.slice(r.desc().plus) }

// Quality returns the per-base Phred-encoded quality bytes. Always the
// same length as Sequence().
func (r FqRecord) Quality() []byte { return r.batch.slice(r.desc().qual) }

// Dropped reports whether a mutator has marked this record for removal.
func (r FqRecord) Dropped() bool { return r.desc().dropped }

// Drop marks this record dropped; it is excluded from Compact output but
// its arena bytes are left untouched until the batch is released.
func (r FqRecord) Drop() { r.desc().dropped = true }

// TrimSequence narrows the sequence/quality spans to [start, start+n),
// relative to the current span. Used by mutators that shorten a record
// from either end; it never grows a span or touches the arena.
func (r FqRecord) TrimSequence(start, n int) {
	d := r.desc()
	d.seq.offset += int32(start)
	d.seq.length = int32(n)
	d.qual.offset += int32(start)
	d.qual.length = int32(n)
}

// SequenceNumber identifies this record's owning batch's position in the
// input stream.
func (r FqRecord) SequenceNumber() uint64 { return r.batch.sequenceNumber }

// OriginalLen returns the sequence length as it was when the record was
// parsed, before any mutator in the chain trimmed it. It plays no part
// in the record's invariants (len(sequence) == len(quality) is checked
// against the live spans, never against this value); trimming mutators
// read it only to decide whether a read was already too short to be
// worth scanning before any trimming happened.
func (r FqRecord) OriginalLen() int { return int(r.desc().originalLen) }
