package pcf

import (
	"fmt"
	"io"
	"os"

	"github.com/bits-and-blooms/bitset"
)

// BoundingBox is the union box over every glyph in the font, derived
// from the accelerator min/max bounds at open time.
type BoundingBox struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
}

// Options configure Open. The zero value is ready to use.
type Options struct {
	// CacheCapacity caps the number of decoded glyphs kept resident.
	// DefaultCacheCapacity when zero or negative.
	CacheCapacity int

	// NewBitmap allocates destination bitmaps for decoded glyphs; the
	// host display runtime plugs its own pixel store in here. NewPixmap
	// when nil.
	NewBitmap NewBitmapFunc
}

// Font decodes glyphs lazily from an open PCF byte source. A Font owns
// its source until Close and is not safe for concurrent use; a single
// renderer is expected to issue one lookup or preload at a time.
type Font struct {
	r         reader
	cache     *glyphCache
	newBitmap NewBitmapFunc

	enc encodingIndex
	dec bitmapDecoder

	metricsBase       int64
	metricsCompressed bool

	glyphCount u32
	ascent     i32
	descent    i32
	bounds     BoundingBox
}

// Open validates the font's table catalog and precomputes every offset
// the lazy decoders need. It performs a fixed number of reads and
// decodes no glyph data. A font that fails to open is unusable; errors
// wrap ErrFormat unless they came from the source itself.
func Open(src io.ReadSeeker, opts *Options) (*Font, error) {
	if opts == nil {
		opts = &Options{}
	}

	font := &Font{
		r:         reader{src: src},
		newBitmap: opts.NewBitmap,
	}
	if font.newBitmap == nil {
		font.newBitmap = NewPixmap
	}

	capacity := opts.CacheCapacity
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	font.cache = newGlyphCache(capacity)

	cat, err := parseCatalog(&font.r)
	if err != nil {
		return nil, err
	}

	if err := font.parseBitmapsHeader(&cat); err != nil {
		return nil, err
	}
	if err := font.parseMetricsHeader(&cat); err != nil {
		return nil, err
	}
	if err := font.parseEncodingsHeader(&cat); err != nil {
		return nil, err
	}
	if err := font.parseAccelerators(&cat); err != nil {
		return nil, err
	}

	return font, nil
}

// OpenFile opens a PCF font from the file system. The file is owned by
// the returned font and released by Close, or immediately if the font
// fails to open.
func OpenFile(name string, opts *Options) (*Font, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	font, err := Open(file, opts)
	if err != nil {
		file.Close()
		return nil, err
	}

	return font, nil
}

// Close releases the underlying source if it is an io.Closer.
func (f *Font) Close() error {
	if closer, ok := f.r.src.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (f *Font) parseBitmapsHeader(cat *catalog) error {
	s := f.r.section(int64(cat.bitmaps.offset) + 4) // skip duplicate format
	f.glyphCount = s.u32()
	if err := s.Err(); err != nil {
		return err
	}

	f.dec = bitmapDecoder{
		lutBase:  int64(cat.bitmaps.offset) + 8,
		glyphPad: cat.glyphPad,
	}
	// Four extra slots trail the offset table (the per-padding sizes).
	f.dec.dataBase = f.dec.lutBase + int64(f.glyphCount+4)*4

	return nil
}

func (f *Font) parseMetricsHeader(cat *catalog) error {
	f.metricsCompressed = cat.metrics.format.compressedMetrics()

	s := f.r.section(int64(cat.metrics.offset) + 4)
	var metricsCount u32
	if f.metricsCompressed {
		metricsCount = u32(s.u16())
		f.metricsBase = int64(cat.metrics.offset) + 4 + 2
	} else {
		metricsCount = s.u32()
		f.metricsBase = int64(cat.metrics.offset) + 4 + 4
	}
	if err := s.Err(); err != nil {
		return err
	}

	if metricsCount != f.glyphCount {
		return fmt.Errorf(
			"pcf: metrics count %d does not match glyph count %d: %w",
			metricsCount, f.glyphCount, ErrFormat,
		)
	}

	return nil
}

func (f *Font) parseEncodingsHeader(cat *catalog) error {
	s := f.r.section(int64(cat.encodings.offset) + 4)
	f.enc = readEncodingRange(&s)
	if err := s.Err(); err != nil {
		return err
	}

	f.enc.base = int64(cat.encodings.offset) + 4 + 5*2
	return nil
}

func (f *Font) parseAccelerators(cat *catalog) error {
	base := int64(cat.accelerators.offset) + 4 + 8 // format + 8 layout flag bytes
	s := f.r.section(base)
	f.ascent = s.i32()
	f.descent = s.i32()
	s.skip(4)
	if cat.accelerators.format.inkBounds() {
		// The ink bounds follow the font bounds; use them instead.
		s.skip(2 * metricsStandardSize)
	}
	minBounds := readMetricsStandard(&s)
	maxBounds := readMetricsStandard(&s)
	if err := s.Err(); err != nil {
		return err
	}

	f.bounds = BoundingBox{
		Width:   int(maxBounds.RightSideBearing - minBounds.LeftSideBearing),
		Height:  int(maxBounds.CharacterAscent + maxBounds.CharacterDescent),
		XOffset: int(minBounds.LeftSideBearing),
		YOffset: -int(maxBounds.CharacterDescent),
	}

	return nil
}

func (f *Font) metricsAt(glyphIndex u16) (MetricsEntry, error) {
	if f.metricsCompressed {
		s := f.r.section(f.metricsBase + int64(glyphIndex)*metricsCompressedSize)
		entry := readMetricsCompressed(&s)
		return entry, s.Err()
	}

	s := f.r.section(f.metricsBase + int64(glyphIndex)*metricsStandardSize)
	entry := readMetricsStandard(&s)
	return entry, s.Err()
}

// LoadGlyphs decodes the given codepoints into the cache. Requests are
// deduplicated, already-cached codepoints are skipped, and the rest
// load in ascending codepoint order regardless of argument order.
// Codepoints the font has no glyph for are silently ignored.
//
// Glyph records enter the cache before any bitmap bytes are read, in
// one pass, and the bitmaps decode in a second pass; hosts that track
// allocation pressure get a reclaim point between the two. If a read
// fails mid-batch, every entry whose bitmap was not fully decoded is
// evicted before the error returns, so the cache never exposes a glyph
// with an unpopulated bitmap.
func (f *Font) LoadGlyphs(codepoints ...rune) error {
	var want bitset.BitSet
	for _, code := range codepoints {
		if code < 0 || code > 0xFFFF {
			continue
		}
		if f.cache.contains(code) {
			continue
		}
		want.Set(uint(code))
	}
	if want.Count() == 0 {
		return nil
	}

	type pending struct {
		code   rune
		offset u32
		glyph  *Glyph
	}
	batch := make([]pending, 0, want.Count())

	for _, c := range want.AsSlice(make([]uint, want.Count())) {
		code := rune(c)

		glyphIndex, ok, err := f.enc.lookup(&f.r, code)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		offset, err := f.dec.offset(&f.r, glyphIndex)
		if err != nil {
			return err
		}

		metrics, err := f.metricsAt(glyphIndex)
		if err != nil {
			return err
		}

		width, height := metrics.width(), metrics.height()
		glyph := &Glyph{
			Bitmap:  f.newBitmap(width, height, 2),
			Width:   width,
			Height:  height,
			XOffset: int(metrics.LeftSideBearing),
			YOffset: -int(metrics.CharacterDescent),
			Advance: int(metrics.CharacterWidth),
		}
		f.cache.put(code, glyph)
		batch = append(batch, pending{code: code, offset: offset, glyph: glyph})
	}

	for i, p := range batch {
		if !f.cache.contains(p.code) {
			// Already evicted by a later insert in this same batch.
			continue
		}
		if err := f.dec.decode(&f.r, p.offset, p.glyph.Bitmap); err != nil {
			for _, q := range batch[i:] {
				f.cache.remove(q.code)
			}
			return err
		}
	}

	return nil
}

// LoadString preloads every rune of s.
func (f *Font) LoadString(s string) error {
	return f.LoadGlyphs([]rune(s)...)
}

// GetGlyph returns the glyph for a codepoint, decoding it on a cache
// miss. A nil glyph with a nil error means the font has no glyph for
// the codepoint; callers pick their own fallback (see DefaultChar).
func (f *Font) GetGlyph(codepoint rune) (*Glyph, error) {
	if glyph, ok := f.cache.get(codepoint); ok {
		return glyph, nil
	}

	if err := f.LoadGlyphs(codepoint); err != nil {
		return nil, err
	}

	glyph, _ := f.cache.get(codepoint)
	return glyph, nil
}

// Ascent is the number of pixels above the baseline of a typical
// ascender.
func (f *Font) Ascent() int {
	return int(f.ascent)
}

// Descent is the number of pixels below the baseline of a typical
// descender.
func (f *Font) Descent() int {
	return int(f.descent)
}

// BoundingBox returns the maximum glyph extent.
func (f *Font) BoundingBox() BoundingBox {
	return f.bounds
}

// DefaultChar is the codepoint the font suggests as a substitute for
// unsupported ones, or -1 if the font names none.
func (f *Font) DefaultChar() rune {
	if f.enc.defaultChar < 0 {
		return -1
	}
	return rune(f.enc.defaultChar)
}

// GlyphCount is the number of glyphs stored in the font.
func (f *Font) GlyphCount() int {
	return int(f.glyphCount)
}
