package pcf

// MetricsEntry is one per-glyph metrics record. The glyph's pixel width
// is implied by the two bearings, not stored.
type MetricsEntry struct {
	LeftSideBearing  i16
	RightSideBearing i16
	CharacterWidth   i16
	CharacterAscent  i16
	CharacterDescent i16
	Attributes       u16
}

const (
	metricsStandardSize   = 12
	metricsCompressedSize = 5
)

func (m *MetricsEntry) width() int {
	return int(m.RightSideBearing - m.LeftSideBearing)
}

func (m *MetricsEntry) height() int {
	return int(m.CharacterAscent + m.CharacterDescent)
}

// readMetricsStandard decodes the 12-byte signed form.
func readMetricsStandard(s *section) MetricsEntry {
	return MetricsEntry{
		LeftSideBearing:  s.i16(),
		RightSideBearing: s.i16(),
		CharacterWidth:   s.i16(),
		CharacterAscent:  s.i16(),
		CharacterDescent: s.i16(),
		Attributes:       s.u16(),
	}
}

// readMetricsCompressed decodes the 5-byte form: each field is an
// unsigned byte biased by +0x80, and attributes are implicitly zero.
func readMetricsCompressed(s *section) MetricsEntry {
	return MetricsEntry{
		LeftSideBearing:  i16(s.u8()) - 0x80,
		RightSideBearing: i16(s.u8()) - 0x80,
		CharacterWidth:   i16(s.u8()) - 0x80,
		CharacterAscent:  i16(s.u8()) - 0x80,
		CharacterDescent: i16(s.u8()) - 0x80,
	}
}
