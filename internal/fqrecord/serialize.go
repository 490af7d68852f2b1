package fqrecord

import "io"

// WriteRecord serializes rec in standard four-line FASTQ framing with LF
// terminators. The plus-tag is omitted unless preservePlus is set, per
// the original wire format.
func WriteRecord(w io.Writer, rec FqRecord, preservePlus bool) error {
	if err := writeAll(w, '@'); err != nil {
		return err
	}
	if err := writeBytes(w, rec.Name()); err != nil {
		return err
	}
	if err := writeAll(w, '\n'); err != nil {
		return err
	}
	if err := writeBytes(w, rec.Sequence()); err != nil {
		return err
	}
	if err := writeAll(w, '\n', '+'); err != nil {
		return err
	}
	if preservePlus {
		if err := writeBytes(w, rec.PlusTag()); err != nil {
			return err
		}
	}
	if err := writeAll(w, '\n'); err != nil {
		return err
	}
	if err := writeBytes(w, rec.Quality()); err != nil {
		return err
	}
	return writeAll(w, '\n')
}

func writeAll(w io.Writer, bs ...byte) error {
	_, err := w.Write(bs)
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
