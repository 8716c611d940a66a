// Package font builds the bitmap glyph atlas stored in the renderer's font
// image and maps text runes to atlas cells.
//
// The atlas is rasterised once from basicfont.Face7x13: glyphs for codes
// MinCode..MaxCode are laid out left to right, GlyphsPerRow to a row, each
// in a GlyphWidth x GlyphHeight cell.
package font

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas geometry.
const (
	// MinCode is the first code with a glyph. Smaller codes render as it.
	MinCode = 32

	// MaxCode is the last code with a glyph. Larger codes render as it.
	MaxCode = 126

	// GlyphWidth is both the cell width and the pen advance.
	GlyphWidth = 7

	// GlyphHeight is the cell height.
	GlyphHeight = 13

	// AtlasSize is the width and height of the atlas image.
	AtlasSize = 256

	// GlyphsPerRow is the number of cells in one atlas row.
	GlyphsPerRow = AtlasSize / GlyphWidth
)

// Ink is the value written for set glyph pixels. The draw shader treats any
// non-zero texel as set and paints it with the text colour.
const Ink = 1

// Clamp maps r into [MinCode, MaxCode].
func Clamp(r rune) int {
	switch {
	case r < MinCode:
		return MinCode
	case r > MaxCode:
		return MaxCode
	}
	return int(r)
}

// Cell returns the top-left atlas coordinate of the glyph for r.
func Cell(r rune) (sx, sy int) {
	idx := Clamp(r) - MinCode
	return (idx % GlyphsPerRow) * GlyphWidth, (idx / GlyphsPerRow) * GlyphHeight
}

// Rasterize renders the atlas into dst, a row-major AtlasSize x AtlasSize
// index image. Glyph pixels become Ink; all other pixels become 0.
func Rasterize(dst []byte) {
	mask := image.NewAlpha(image.Rect(0, 0, AtlasSize, AtlasSize))
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}
	ascent := face.Ascent
	for code := MinCode; code <= MaxCode; code++ {
		sx, sy := Cell(rune(code))
		d.Dot = fixed.P(sx, sy+ascent)
		d.DrawString(string(rune(code)))
	}

	for i := range dst[:AtlasSize*AtlasSize] {
		if mask.Pix[i] != 0 {
			dst[i] = Ink
		} else {
			dst[i] = 0
		}
	}
}
