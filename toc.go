package pcf

import "fmt"

type table struct {
	format format
	size   u32
	offset u32
}

// present reports whether the table appeared in the TOC. Offset zero is
// impossible for a real table body (the header lives there).
func (t *table) present() bool {
	return t.offset != 0
}

// catalog holds the TOC entries of the tables needed at runtime, with
// all format flags validated once so nothing downstream re-interprets
// them per read.
type catalog struct {
	accelerators table // accelerators or BDF accelerators, whichever is present
	metrics      table
	bitmaps      table
	encodings    table

	glyphPad int // bitmap row padding unit in bytes: 1, 2, 4 or 8
}

func parseCatalog(r *reader) (cat catalog, err error) {
	s := r.section(0)

	var magic [4]byte
	copy(magic[:], s.read(4))
	tableCount := s.u32le()
	if err = s.Err(); err != nil {
		return
	}
	if magic != fileMagic {
		err = fmt.Errorf("pcf: not a PCF file (magic mismatch): %w", ErrFormat)
		return
	}

	var bdfAccelerators table
	for i := uint32(0); i < tableCount; i++ {
		if s.Err() != nil {
			break
		}

		typ := tableType(s.u32le())
		entry := table{
			format: format(s.u32le()),
			size:   s.u32le(),
			offset: s.u32le(),
		}

		switch typ {
		case TableTypeAccelerators:
			cat.accelerators = entry
		case TableTypeMetrics:
			cat.metrics = entry
		case TableTypeBitmaps:
			cat.bitmaps = entry
		case TableTypeBdfEncodings:
			cat.encodings = entry
		case TableTypeBdfAccelerators:
			bdfAccelerators = entry
		}
	}
	if err = s.Err(); err != nil {
		return
	}

	// Either accelerator table works; prefer the plain one.
	if !cat.accelerators.present() {
		cat.accelerators = bdfAccelerators
	}

	if !cat.accelerators.present() ||
		!cat.metrics.present() ||
		!cat.bitmaps.present() ||
		!cat.encodings.present() {
		err = fmt.Errorf("pcf: required table missing: %w", ErrFormat)
		return
	}

	for _, entry := range []table{
		cat.accelerators,
		cat.metrics,
		cat.bitmaps,
		cat.encodings,
	} {
		if !entry.format.msbFirst() {
			err = fmt.Errorf(
				"pcf: only MSByte-first data with MSBit-first glyphs is supported: %w",
				ErrFormat,
			)
			return
		}
	}

	if !cat.bitmaps.format.byteScanUnit() {
		err = fmt.Errorf(
			"pcf: only single-byte bitmap scan units are supported: %w",
			ErrFormat,
		)
		return
	}
	cat.glyphPad = cat.bitmaps.format.glyphPad()

	return
}
