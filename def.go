// Package pcf reads X11 portable compiled font (PCF) files. Glyphs are
// decoded lazily, one seek-and-read at a time, and kept resident in a
// fixed-capacity LRU cache, so a font stays usable on targets where the
// whole file does not fit in memory.
//
// https://fontforge.org/docs/techref/pcf-format.html
package pcf

import "errors"

type i16 = int16
type i32 = int32

type u8 = uint8
type u16 = uint16
type u32 = uint32

// ErrFormat reports a font file this package cannot use: bad magic,
// missing tables, unsupported byte/bit order or scan unit, or
// inconsistent glyph counts. It is always fatal to Open.
var ErrFormat = errors.New("unsupported or corrupted font data")

// DefaultCacheCapacity is the number of decoded glyphs kept resident
// when Options.CacheCapacity is zero.
const DefaultCacheCapacity = 128

var fileMagic = [4]byte{0x01, 'f', 'c', 'p'}

type tableType u32

const (
	TableTypeAccelerators    tableType = 1 << 1
	TableTypeMetrics         tableType = 1 << 2
	TableTypeBitmaps         tableType = 1 << 3
	TableTypeBdfEncodings    tableType = 1 << 5
	TableTypeBdfAccelerators tableType = 1 << 8
)

type format u32

const (
	// Low two bits select the glyph row padding unit: 2^n bytes.
	FormatGlyphPadMask format = 3 << 0

	// Bytes within each table body are most-significant first.
	FormatByteMsb format = 1 << 2

	// Bits within each bitmap byte are most-significant first.
	FormatBitMsb format = 1 << 3

	// Non-zero selects scan units wider than one byte.
	FormatScanUnitMask format = 3 << 4

	// Metrics records are stored in the 5-byte biased form.
	FormatCompressedMetrics format = 0x100

	// Accelerator table carries ink bounds after the font bounds.
	FormatInkBounds format = 0x100
)

func (f format) msbFirst() bool {
	const want = FormatByteMsb | FormatBitMsb
	return f&want == want
}

func (f format) byteScanUnit() bool {
	return f&FormatScanUnitMask == 0
}

// glyphPad returns the row padding unit in bytes: 1, 2, 4 or 8.
func (f format) glyphPad() int {
	return 1 << (f & FormatGlyphPadMask)
}

func (f format) compressedMetrics() bool {
	return f&FormatCompressedMetrics != 0
}

func (f format) inkBounds() bool {
	return f&FormatInkBounds != 0
}
