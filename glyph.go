package pcf

// Glyph is one decoded character: its pixel image plus the placement
// metrics a text renderer needs. Glyphs are immutable once loaded and
// owned by the font's cache until evicted.
type Glyph struct {
	// Bitmap holds Width x Height pixels; a set pixel is "on".
	Bitmap Bitmap

	Width  int
	Height int

	// XOffset is the left side bearing: pen position to left edge.
	XOffset int

	// YOffset is the negated descent: baseline to bottom edge.
	YOffset int

	// Advance is how far the pen moves after drawing, in pixels.
	Advance int
}
