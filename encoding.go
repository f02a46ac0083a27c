package pcf

// noGlyph marks an unmapped slot in the encoding index table.
const noGlyph u16 = 0xFFFF

// encodingIndex maps a 16-bit codepoint, split into its high and low
// bytes, to a glyph index through the dense BDF encodings table.
type encodingIndex struct {
	minByte1, maxByte1 i16 // high byte range
	minByte2, maxByte2 i16 // low byte range
	defaultChar        i16

	base int64 // file offset of the u16 index table
}

// Field order in the file is low-byte range first.
func readEncodingRange(s *section) encodingIndex {
	var e encodingIndex
	e.minByte2 = s.i16()
	e.maxByte2 = s.i16()
	e.minByte1 = s.i16()
	e.maxByte1 = s.i16()
	e.defaultChar = s.i16()
	return e
}

// lookup resolves a codepoint to a glyph index. Codepoints outside the
// covered rectangle are rejected without touching the source, and the
// 0xFFFF sentinel reads as "no glyph" rather than an index.
func (e *encodingIndex) lookup(r *reader, codepoint rune) (index u16, ok bool, err error) {
	enc1 := i16(codepoint>>8) & 0xFF
	enc2 := i16(codepoint) & 0xFF
	if enc1 < e.minByte1 || enc1 > e.maxByte1 ||
		enc2 < e.minByte2 || enc2 > e.maxByte2 {
		return 0, false, nil
	}

	stride := int64(e.maxByte2-e.minByte2) + 1
	slot := int64(enc1-e.minByte1)*stride + int64(enc2-e.minByte2)

	s := r.section(e.base + slot*2)
	index = s.u16()
	if err = s.Err(); err != nil {
		return 0, false, err
	}
	if index == noGlyph {
		return 0, false, nil
	}

	return index, true, nil
}
