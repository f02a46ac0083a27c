package pcf

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face adapts a Font to golang.org/x/image/font.Face, so cached PCF
// glyphs can be drawn with a font.Drawer. PCF metrics are whole pixels;
// all fixed-point values are integral.
type Face struct {
	font *Font
}

var _ font.Face = (*Face)(nil)

func NewFace(f *Font) *Face {
	return &Face{font: f}
}

func (f *Face) Close() error {
	return f.font.Close()
}

func (f *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle,
	mask image.Image,
	maskp image.Point,
	advance fixed.Int26_6,
	ok bool,
) {
	glyph, err := f.font.GetGlyph(r)
	if err != nil || glyph == nil {
		return
	}

	x := dot.X.Floor() + glyph.XOffset
	y := dot.Y.Floor() - glyph.Height - glyph.YOffset
	dr = image.Rect(x, y, x+glyph.Width, y+glyph.Height)
	mask = glyphMask(glyph)
	advance = fixed.I(glyph.Advance)
	ok = true

	return
}

func (f *Face) GlyphBounds(r rune) (
	bounds fixed.Rectangle26_6,
	advance fixed.Int26_6,
	ok bool,
) {
	glyph, err := f.font.GetGlyph(r)
	if err != nil || glyph == nil {
		return
	}

	bounds = fixed.R(
		glyph.XOffset,
		-glyph.Height-glyph.YOffset,
		glyph.XOffset+glyph.Width,
		-glyph.YOffset,
	)
	advance = fixed.I(glyph.Advance)
	ok = true

	return
}

func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	glyph, err := f.font.GetGlyph(r)
	if err != nil || glyph == nil {
		return
	}

	return fixed.I(glyph.Advance), true
}

// Kern always returns 0: PCF fonts carry no kerning data.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

func (f *Face) Metrics() font.Metrics {
	ascent := f.font.Ascent()
	descent := f.font.Descent()

	return font.Metrics{
		Height:  fixed.I(ascent + descent),
		Ascent:  fixed.I(ascent),
		Descent: fixed.I(descent),
	}
}

func glyphMask(glyph *Glyph) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, glyph.Width, glyph.Height))
	for y := 0; y < glyph.Height; y++ {
		for x := 0; x < glyph.Width; x++ {
			if glyph.Bitmap.Pixel(x, y) {
				mask.Pix[y*mask.Stride+x] = 0xFF
			}
		}
	}

	return mask
}
