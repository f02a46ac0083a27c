package pcf

import (
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
)

type FontInfo struct {
	font *Font
	key  Key
}

func (i *FontInfo) Font() *Font {
	return i.font
}

func (i *FontInfo) String() string {
	return i.key.String()
}

func (i FontInfo) Key() Key {
	return i.key
}

type Id uint8

// FontSet is a registry of open fonts keyed by family and style, for
// renderers juggling more than one face at a time.
type FontSet struct {
	fonts []FontInfo
}

func NewFontSet(capacity uint8) FontSet {
	return FontSet{
		fonts: make([]FontInfo, 0, capacity),
	}
}

func (f *FontSet) Get(id Id) *FontInfo {
	return &f.fonts[id]
}

func (f *FontSet) Key(id Id) Key {
	return f.fonts[id].key
}

func (f *FontSet) AddFont(
	family string,
	style Style,
	src io.ReadSeeker,
	opts *Options,
) (Id, error) {
	id := len(f.fonts)

	font, err := Open(src, opts)
	if err != nil {
		return Id(id), fmt.Errorf("unable to open font file: %w", err)
	}

	f.fonts = append(f.fonts, FontInfo{
		font: font,
		key:  Key{Family: strings.ToLower(family), Style: style},
	})

	return Id(id), nil
}

// Find returns the id of the font registered under the given family and
// style.
func (f *FontSet) Find(family string, style Style) (Id, bool) {
	key := Key{Family: strings.ToLower(family), Style: style}
	for id := range f.fonts {
		if f.fonts[id].key == key {
			return Id(id), true
		}
	}

	return 0, false
}

func (f *FontSet) Grow(amt uint8) {
	f.fonts = slices.Grow(f.fonts, int(amt))
}

func (f *FontSet) Len() int {
	return len(f.fonts)
}

func (f *FontSet) MustAddFont(
	family string,
	style Style,
	src io.ReadSeeker,
	opts *Options,
) Id {
	id, err := f.AddFont(family, style, src, opts)
	if err != nil {
		log.Panicf(
			"unable to add font family(%s), style(%s): %v",
			family,
			style,
			err,
		)
	}

	return id
}

type Key struct {
	Family string
	Style  Style
}

func (k Key) String() string {
	return strings.ToLower(k.Family) + k.Style.String()
}

type Style uint8

const (
	StyleNone Style = 0
)

const (
	StyleB Style = 1 << iota
	StyleI
)

func (s Style) String() string {
	switch s {
	case StyleB:
		return "b"
	case StyleI:
		return "i"
	case StyleB | StyleI:
		return "bi"
	}

	return ""
}
