package pcf

import (
	"bytes"
	"encoding/binary"
)

// testGlyph is one glyph to be packed into a synthetic font image.
type testGlyph struct {
	code    rune
	metrics MetricsEntry
	rows    []byte // packed bitmap rows, rowStride(width, pad) bytes each
}

// fontImage assembles a minimal well-formed PCF file in memory. Zero
// values produce a valid single-byte-padded font; the knobs exist so
// tests can exercise each validation failure.
type fontImage struct {
	glyphs []testGlyph

	pad         int // row padding unit, 1 when zero
	compressed  bool
	inkBounds   bool
	useBdfAccel bool
	ascent      i32
	descent     i32
	defaultChar i16
	encWiden    int // widen the low-byte encoding range on both sides

	omit        tableType // drop this TOC entry entirely
	badOrder    bool      // strip the MSByte/MSBit format flags
	badScanUnit bool      // declare a multi-byte scan unit
	countSkew   int       // added to the stored metrics count
}

func be(buf *bytes.Buffer, vals ...any) {
	for _, v := range vals {
		binary.Write(buf, binary.BigEndian, v)
	}
}

func le(buf *bytes.Buffer, vals ...any) {
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

func (fi *fontImage) build() []byte {
	pad := fi.pad
	if pad == 0 {
		pad = 1
	}
	padBits := u32(0)
	for p := pad; p > 1; p >>= 1 {
		padBits++
	}

	formatBase := u32(FormatByteMsb | FormatBitMsb)
	if fi.badOrder {
		formatBase = 0
	}

	bitmapsFormat := formatBase | padBits
	if fi.badScanUnit {
		bitmapsFormat |= 1 << 4
	}
	metricsFormat := formatBase
	if fi.compressed {
		metricsFormat |= u32(FormatCompressedMetrics)
	}
	accelFormat := formatBase
	if fi.inkBounds {
		accelFormat |= u32(FormatInkBounds)
	}

	accelType := TableTypeAccelerators
	if fi.useBdfAccel {
		accelType = TableTypeBdfAccelerators
	}

	type tableImage struct {
		typ    tableType
		format u32
		body   []byte
	}
	tables := []tableImage{
		{accelType, accelFormat, fi.accelBody(accelFormat)},
		{TableTypeMetrics, metricsFormat, fi.metricsBody(metricsFormat)},
		{TableTypeBdfEncodings, formatBase, fi.encodingsBody(formatBase)},
		{TableTypeBitmaps, bitmapsFormat, fi.bitmapsBody(bitmapsFormat)},
	}
	if fi.omit != 0 {
		kept := tables[:0]
		for _, tbl := range tables {
			if tbl.typ != fi.omit {
				kept = append(kept, tbl)
			}
		}
		tables = kept
	}

	var out bytes.Buffer
	out.Write(fileMagic[:])
	le(&out, u32(len(tables)))

	offset := u32(8 + 16*len(tables))
	for _, tbl := range tables {
		le(&out, u32(tbl.typ), tbl.format, u32(len(tbl.body)), offset)
		offset += u32(len(tbl.body))
	}
	for _, tbl := range tables {
		out.Write(tbl.body)
	}

	return out.Bytes()
}

func (fi *fontImage) metricsBody(format u32) []byte {
	var buf bytes.Buffer
	be(&buf, format)

	count := len(fi.glyphs) + fi.countSkew
	if fi.compressed {
		be(&buf, u16(count))
		for _, g := range fi.glyphs {
			m := g.metrics
			be(&buf,
				u8(m.LeftSideBearing+0x80),
				u8(m.RightSideBearing+0x80),
				u8(m.CharacterWidth+0x80),
				u8(m.CharacterAscent+0x80),
				u8(m.CharacterDescent+0x80),
			)
		}
	} else {
		be(&buf, u32(count))
		for _, g := range fi.glyphs {
			m := g.metrics
			be(&buf,
				m.LeftSideBearing,
				m.RightSideBearing,
				m.CharacterWidth,
				m.CharacterAscent,
				m.CharacterDescent,
				m.Attributes,
			)
		}
	}

	return buf.Bytes()
}

func (fi *fontImage) bitmapsBody(format u32) []byte {
	var buf bytes.Buffer
	be(&buf, format, u32(len(fi.glyphs)))

	offset := u32(0)
	for _, g := range fi.glyphs {
		be(&buf, offset)
		offset += u32(len(g.rows))
	}
	be(&buf, u32(0), u32(0), u32(0), u32(0)) // per-padding bitmap sizes

	for _, g := range fi.glyphs {
		buf.Write(g.rows)
	}

	return buf.Bytes()
}

func (fi *fontImage) encRange() (minB1, maxB1, minB2, maxB2 i16) {
	minB1, minB2 = 0xFF, 0xFF
	for _, g := range fi.glyphs {
		b1 := i16(g.code>>8) & 0xFF
		b2 := i16(g.code) & 0xFF
		minB1, maxB1 = min(minB1, b1), max(maxB1, b1)
		minB2, maxB2 = min(minB2, b2), max(maxB2, b2)
	}

	minB2 = max(minB2-i16(fi.encWiden), 0)
	maxB2 = min(maxB2+i16(fi.encWiden), 0xFF)
	return
}

func (fi *fontImage) encodingsBody(format u32) []byte {
	minB1, maxB1, minB2, maxB2 := fi.encRange()

	var buf bytes.Buffer
	be(&buf, format, minB2, maxB2, minB1, maxB1, fi.defaultChar)

	stride := int(maxB2-minB2) + 1
	grid := make([]u16, (int(maxB1-minB1)+1)*stride)
	for i := range grid {
		grid[i] = noGlyph
	}
	for i, g := range fi.glyphs {
		b1 := i16(g.code>>8) & 0xFF
		b2 := i16(g.code) & 0xFF
		grid[int(b1-minB1)*stride+int(b2-minB2)] = u16(i)
	}
	for _, slot := range grid {
		be(&buf, slot)
	}

	return buf.Bytes()
}

func (fi *fontImage) accelBody(format u32) []byte {
	var minBounds, maxBounds MetricsEntry
	for i, g := range fi.glyphs {
		m := g.metrics
		if i == 0 {
			minBounds, maxBounds = m, m
			continue
		}
		minBounds.LeftSideBearing = min(minBounds.LeftSideBearing, m.LeftSideBearing)
		maxBounds.RightSideBearing = max(maxBounds.RightSideBearing, m.RightSideBearing)
		maxBounds.CharacterAscent = max(maxBounds.CharacterAscent, m.CharacterAscent)
		maxBounds.CharacterDescent = max(maxBounds.CharacterDescent, m.CharacterDescent)
	}

	writeBounds := func(buf *bytes.Buffer, m MetricsEntry) {
		be(buf,
			m.LeftSideBearing,
			m.RightSideBearing,
			m.CharacterWidth,
			m.CharacterAscent,
			m.CharacterDescent,
			m.Attributes,
		)
	}

	var buf bytes.Buffer
	be(&buf, format)
	buf.Write(make([]byte, 8)) // layout flag bytes, ignored by the parser
	be(&buf, fi.ascent, fi.descent, u32(0))
	if fi.inkBounds {
		// Font bounds first, then the ink bounds the parser should use.
		buf.Write(make([]byte, 2*metricsStandardSize))
	}
	writeBounds(&buf, minBounds)
	writeBounds(&buf, maxBounds)

	return buf.Bytes()
}

// glyphA is the canonical 8x8 test glyph at codepoint 'A'.
func glyphA() testGlyph {
	return testGlyph{
		code: 'A',
		metrics: MetricsEntry{
			LeftSideBearing:  0,
			RightSideBearing: 8,
			CharacterWidth:   8,
			CharacterAscent:  7,
			CharacterDescent: 1,
		},
		rows: []byte{0x18, 0x24, 0x42, 0x7E, 0x42, 0x42, 0x42, 0x00},
	}
}

// countingSource wraps a bytes.Reader and counts Read calls, so tests
// can assert that an operation touched (or didn't touch) the stream.
type countingSource struct {
	*bytes.Reader
	reads int
}

func newCountingSource(data []byte) *countingSource {
	return &countingSource{Reader: bytes.NewReader(data)}
}

func (c *countingSource) Read(p []byte) (int, error) {
	c.reads++
	return c.Reader.Read(p)
}
