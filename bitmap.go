package pcf

import "github.com/bits-and-blooms/bitset"

// Bitmap is the destination pixel store for a decoded glyph. The host
// display runtime usually supplies its own implementation via
// Options.NewBitmap; Pixmap is used when it doesn't.
type Bitmap interface {
	Size() (width, height int)
	SetPixel(x, y int, on bool)
	Pixel(x, y int) bool
}

// NewBitmapFunc allocates a destination bitmap. colors is the number of
// distinct pixel values the glyph uses; PCF glyphs always pass 2.
type NewBitmapFunc func(width, height, colors int) Bitmap

// Pixmap is a 2-color Bitmap backed by one bit per pixel.
type Pixmap struct {
	width, height int
	bits          bitset.BitSet
}

// NewPixmap is a NewBitmapFunc.
func NewPixmap(width, height, colors int) Bitmap {
	return &Pixmap{width: width, height: height}
}

func (p *Pixmap) Size() (width, height int) {
	return p.width, p.height
}

func (p *Pixmap) SetPixel(x, y int, on bool) {
	p.bits.SetTo(uint(y*p.width+x), on)
}

func (p *Pixmap) Pixel(x, y int) bool {
	return p.bits.Test(uint(y*p.width + x))
}

// rowStride returns the packed byte length of one glyph row: the pixel
// width rounded up to the padding unit.
func rowStride(width, pad int) int {
	unitBits := pad * 8
	return (width + unitBits - 1) / unitBits * pad
}

// bitmapDecoder locates packed glyph bitmaps through the dense offset
// table and unpacks their MSBit-first rows.
type bitmapDecoder struct {
	lutBase  int64 // file offset of the u32 glyph-offset table
	dataBase int64 // file offset of the packed bitmap bytes
	glyphPad int
}

func (d *bitmapDecoder) offset(r *reader, glyphIndex u16) (u32, error) {
	s := r.section(d.lutBase + int64(glyphIndex)*4)
	off := s.u32()
	return off, s.Err()
}

// decode unpacks the glyph stored at the given byte offset into dst,
// left to right, top to bottom. Pad bits past the pixel width are
// dropped. dst dimensions come from the glyph's metrics; no further
// validation happens here.
func (d *bitmapDecoder) decode(r *reader, offset u32, dst Bitmap) error {
	width, height := dst.Size()
	stride := rowStride(width, d.glyphPad)

	row := make([]byte, stride)
	s := r.section(d.dataBase + int64(offset))
	for y := 0; y < height; y++ {
		s.bytes(row)
		if err := s.Err(); err != nil {
			return err
		}

		for x := 0; x < width; x++ {
			dst.SetPixel(x, y, row[x>>3]&(0x80>>(x&7)) != 0)
		}
	}

	return nil
}
