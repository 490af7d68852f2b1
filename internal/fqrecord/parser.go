package fqrecord

import (
	"bufio"
	"io"

	"github.com/lessup/fqkit/internal/fqerr"
)

// parserState is the FASTQ line-framing state machine.
type parserState int

const (
	stateAwaitHeader parserState = iota
	stateName
	stateSequence
	stateSeparator
	statePlus
	stateQuality
)

const validBases = "ACGTNacgtn"

func isValidBase(b byte) bool {
	for i := 0; i < len(validBases); i++ {
		if validBases[i] == b {
			return true
		}
	}
	return false
}

// spillRecord is an owned copy of a record's bytes, held only when the
// arena ran out of room partway through writing it. The bytes that had
// already landed in the arena are copied out and the arena's cursor is
// rolled back before the spill continues accumulating the rest of the
// record, so nothing read from the source is ever lost; it is replayed
// into the next batch's arena in a single copy once that batch exists.
type spillRecord struct {
	data                              []byte
	nameLen, seqLen, plusLen, qualLen int32
}

// Parser turns a byte stream into FqRecords. Each field is written
// directly into the batch's arena tail as it is scanned; bytes are
// copied out of the arena only on the rare path where a record
// outgrows the room left in the batch it started in.
type Parser struct {
	r       *bufio.Reader
	path    string
	offset  int64
	lenient bool
	spill   *spillRecord
}

// NewParser wraps r for a given logical path (used only in error
// messages) and lenient mode: sequence bytes outside ACGTN/acgtn are
// accepted as-is instead of being a FormatError. Lenient mode does not
// skip records; every other parse error stays fatal.
func NewParser(r io.Reader, path string, lenient bool) *Parser {
	return &Parser{r: bufio.NewReaderSize(r, 1<<20), path: path, lenient: lenient}
}

// Fill parses records directly into batch's arena until it is full, the
// arena has no more room for the next record, or the stream ends.
// Returns the number of records added and whether the stream is now
// exhausted.
func (p *Parser) Fill(batch *RecordBatch) (added int, eof bool, err error) {
	if p.spill != nil {
		if !p.replaySpill(batch) {
			return added, false, p.oversized(batch)
		}
		added++
		p.spill = nil
	}

	for !batch.Full() {
		ok, eofNow, spilled, ferr := p.readOneInto(batch)
		if ferr != nil {
			return added, false, ferr
		}
		if spilled {
			// No more room in this batch; the record that didn't fit is
			// queued in p.spill for the next one. Never report EOF here,
			// even if the stream itself is exhausted: the caller must
			// come back with a fresh batch to collect the spill.
			return added, false, nil
		}
		if !ok {
			return added, true, nil
		}
		added++
		if eofNow {
			return added, true, nil
		}
	}
	return added, false, nil
}

// replaySpill writes a previously-spilled record into batch's arena in
// one copy — the only copy this parser ever performs — and registers
// it. It only ever runs against a freshly acquired batch (Fill always
// tries it first, before any new parsing), so if the record still
// doesn't fit here, no batch ever will.
func (p *Parser) replaySpill(batch *RecordBatch) bool {
	s := p.spill
	total := int32(len(s.data))
	if total > int32(batch.arenaRemaining()) {
		return false
	}
	off := batch.cursor
	copy(batch.arena[off:], s.data)
	batch.cursor += total

	nameSpan := span{offset: off, length: s.nameLen}
	off += s.nameLen
	seqSpan := span{offset: off, length: s.seqLen}
	off += s.seqLen
	plusSpan := span{offset: off, length: s.plusLen}
	off += s.plusLen
	qualSpan := span{offset: off, length: s.qualLen}

	return batch.addRecord(nameSpan, seqSpan, plusSpan, qualSpan)
}

func (p *Parser) oversized(batch *RecordBatch) error {
	return fqerr.Wrapf(fqerr.Resource, "record exceeds arena capacity (%d bytes)", len(batch.arena)).WithPath(p.path)
}

func (p *Parser) readByte() (byte, bool, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, true, nil
		}
		return 0, false, fqerr.New(fqerr.Io, err).WithPath(p.path).WithOffset(p.offset)
	}
	p.offset++
	return b, false, nil
}

// readOneInto parses a single record starting from stateAwaitHeader,
// writing each content byte straight into batch's arena at its current
// cursor. If the arena fills up mid-record, the bytes already written
// for this record are copied out and the cursor is rolled back to where
// the record began, so the batch is left exactly as if this record had
// never been attempted; parsing then continues into an owned buffer for
// the remainder, producing a spilled record instead of an arena-backed
// one.
//
// Returns ok=false, eof=true when the stream ends cleanly between
// records. Returns spilled=true when the record was parsed in full but
// didn't fit batch's arena; p.spill then holds it for the next batch.
func (p *Parser) readOneInto(batch *RecordBatch) (ok, eof, spilled bool, err error) {
	recordStart := batch.cursor
	state := stateAwaitHeader
	var nameLen, seqLen, plusLen, qualLen int32
	var owned []byte

	// put writes a content byte for the field currently being scanned.
	// It returns true when the record can never fit any batch's arena,
	// even a completely empty one — discovered the moment a fresh batch
	// (recordStart == 0) runs out of room — in which case there is no
	// point buffering the rest of a record that will only ever be
	// rejected.
	put := func(b byte) (fatal bool) {
		if owned != nil {
			owned = append(owned, b)
			return false
		}
		if batch.cursor < int32(len(batch.arena)) {
			batch.arena[batch.cursor] = b
			batch.cursor++
			return false
		}
		if recordStart == 0 {
			return true
		}
		owned = append(owned, batch.arena[recordStart:batch.cursor]...)
		owned = append(owned, b)
		batch.cursor = recordStart
		return false
	}

	finish := func(atEOF bool) (bool, bool, bool, error) {
		if owned != nil {
			p.spill = &spillRecord{data: owned, nameLen: nameLen, seqLen: seqLen, plusLen: plusLen, qualLen: qualLen}
			return false, atEOF, true, nil
		}
		batch.addRecord(
			span{offset: recordStart, length: nameLen},
			span{offset: recordStart + nameLen, length: seqLen},
			span{offset: recordStart + nameLen + seqLen, length: plusLen},
			span{offset: recordStart + nameLen + seqLen + plusLen, length: qualLen},
		)
		return true, atEOF, false, nil
	}

	for {
		b, atEOF, rerr := p.readByte()
		if rerr != nil {
			return false, false, false, rerr
		}
		if atEOF {
			switch state {
			case stateAwaitHeader:
				return false, true, false, nil
			case stateQuality:
				if qualLen == seqLen {
					return finish(true)
				}
				return false, false, false, p.truncated()
			default:
				return false, false, false, p.truncated()
			}
		}
		if b == '\r' {
			continue
		}

		switch state {
		case stateAwaitHeader:
			if b == '\n' {
				continue
			}
			if b != '@' {
				return false, false, false, p.badFraming("expected '@' at start of record")
			}
			state = stateName
		case stateName:
			if b == '\n' {
				state = stateSequence
				continue
			}
			if put(b) {
				return false, false, false, p.oversized(batch)
			}
			nameLen++
		case stateSequence:
			if b == '\n' {
				state = stateSeparator
				continue
			}
			if !p.lenient && !isValidBase(b) {
				return false, false, false, p.badSequence(b)
			}
			if put(b) {
				return false, false, false, p.oversized(batch)
			}
			seqLen++
		case stateSeparator:
			if b != '+' {
				return false, false, false, p.badFraming("expected '+' separator line")
			}
			state = statePlus
		case statePlus:
			if b == '\n' {
				state = stateQuality
				continue
			}
			if put(b) {
				return false, false, false, p.oversized(batch)
			}
			plusLen++
		case stateQuality:
			if seqLen == 0 {
				// An empty sequence has an empty quality line: only its
				// terminator follows.
				if b != '\n' {
					return false, false, false, p.badFraming("expected newline after quality line")
				}
				return finish(false)
			}
			if put(b) {
				return false, false, false, p.oversized(batch)
			}
			qualLen++
			if qualLen == seqLen {
				// Consume the trailing terminator, if any; a missing
				// one (EOF right here) is fine.
				nb, atEOF2, terr := p.readByte()
				if terr != nil {
					return false, false, false, terr
				}
				if atEOF2 {
					return finish(true)
				}
				if nb == '\r' {
					nb, atEOF2, terr = p.readByte()
					if terr != nil {
						return false, false, false, terr
					}
					if atEOF2 {
						return finish(true)
					}
				}
				if nb != '\n' {
					return false, false, false, p.badFraming("expected newline after quality line")
				}
				return finish(false)
			}
		}
	}
}

func (p *Parser) badFraming(msg string) error {
	return fqerr.Wrapf(fqerr.Format, "%s", msg).WithPath(p.path).WithOffset(p.offset)
}

func (p *Parser) badSequence(b byte) error {
	return fqerr.Wrapf(fqerr.Format, "unexpected byte %q in sequence", b).WithPath(p.path).WithOffset(p.offset)
}

func (p *Parser) truncated() error {
	return fqerr.Wrapf(fqerr.Format, "truncated record at end of input").WithPath(p.path).WithOffset(p.offset)
}
