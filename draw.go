// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"fmt"

	"github.com/gogpu/pxl/internal/cmdbuf"
	"github.com/gogpu/pxl/internal/font"
)

// NoColorKey disables colour keying in Blt.
const NoColorKey = cmdbuf.NoColorKey

// Glyph metrics of the built-in font.
const (
	GlyphWidth  = font.GlyphWidth
	GlyphHeight = font.GlyphHeight
)

func i32(v int) int32 {
	return int32(v) //nolint:gosec // framebuffer and image coordinates fit int32
}

// next returns a fresh record stamped with the current clip and remap state.
func (r *Renderer) next(shape cmdbuf.ShapeType, col int) *cmdbuf.Record {
	rec := r.cmds.Next(r.state)
	rec.Shape = shape
	rec.Color = i32(col)
	return rec
}

// Cls fills the framebuffer with col, within the clip rectangle.
func (r *Renderer) Cls(col int) {
	rec := r.next(cmdbuf.ShapeRect, col)
	rec.W, rec.H = i32(r.width), i32(r.height)
}

// Pix draws one pixel.
func (r *Renderer) Pix(x, y, col int) {
	rec := r.next(cmdbuf.ShapePixel, col)
	rec.X1, rec.Y1 = i32(x), i32(y)
}

// Line draws a line from (x1, y1) to (x2, y2), both ends included.
func (r *Renderer) Line(x1, y1, x2, y2, col int) {
	rec := r.next(cmdbuf.ShapeLine, col)
	rec.X1, rec.Y1 = i32(x1), i32(y1)
	rec.X2, rec.Y2 = i32(x2), i32(y2)
}

// Rect fills a w x h rectangle with its top-left corner at (x, y).
func (r *Renderer) Rect(x, y, w, h, col int) {
	rec := r.next(cmdbuf.ShapeRect, col)
	rec.X1, rec.Y1 = i32(x), i32(y)
	rec.W, rec.H = i32(w), i32(h)
}

// RectB draws the one-pixel outline of a w x h rectangle.
func (r *Renderer) RectB(x, y, w, h, col int) {
	rec := r.next(cmdbuf.ShapeRectOutline, col)
	rec.X1, rec.Y1 = i32(x), i32(y)
	rec.W, rec.H = i32(w), i32(h)
}

// Circ fills a circle of radius rad centred on (x, y).
func (r *Renderer) Circ(x, y, rad, col int) {
	rec := r.next(cmdbuf.ShapeCircle, col)
	rec.X1, rec.Y1 = i32(x), i32(y)
	rec.W = i32(rad)
}

// CircB draws the one-pixel outline of a circle of radius rad.
func (r *Renderer) CircB(x, y, rad, col int) {
	rec := r.next(cmdbuf.ShapeCircleOutline, col)
	rec.X1, rec.Y1 = i32(x), i32(y)
	rec.W = i32(rad)
}

// Blt copies the w x h region at (sx, sy) of image img to (x, y). Source
// pixels equal to colkey are skipped; pass NoColorKey to copy all of them.
// A negative w or h mirrors the copy horizontally or vertically.
// A call naming an image outside 0..ImageCount-1 records nothing.
func (r *Renderer) Blt(x, y, img, sx, sy, w, h, colkey int) {
	if !validImage(img) {
		slogger().Warn("pxl: blit dropped", "image", img,
			"err", ErrImageIndexOutOfRange)
		return
	}
	rec := r.next(cmdbuf.ShapeBlit, colkey)
	rec.Image = i32(img)
	rec.X1, rec.Y1 = i32(x), i32(y)
	rec.X2, rec.Y2 = i32(sx), i32(sy)
	rec.W, rec.H = i32(w), i32(h)
}

// Text draws s with its top-left corner at (x, y), one glyph per rune.
// Runes outside the printable ASCII range draw as the nearest printable
// glyph.
func (r *Renderer) Text(x, y int, s string, col int) {
	for _, c := range s {
		sx, sy := font.Cell(c)
		rec := r.next(cmdbuf.ShapeGlyph, col)
		rec.Image = FontImage
		rec.X1, rec.Y1 = i32(x), i32(y)
		rec.X2, rec.Y2 = i32(sx), i32(sy)
		rec.W, rec.H = GlyphWidth, GlyphHeight
		x += GlyphWidth
	}
}

// Clip limits drawing to the w x h rectangle at (x, y) for all calls that
// follow.
func (r *Renderer) Clip(x, y, w, h int) {
	r.state.SetClip(x, y, w, h)
}

// ResetClip restores the clip rectangle to the whole framebuffer.
func (r *Renderer) ResetClip() {
	r.state.ResetClip(r.width, r.height)
}

// Pal makes colour src draw as colour dst for all calls that follow.
func (r *Renderer) Pal(src, dst int) error {
	if err := r.state.Remap(src, dst); err != nil {
		return fmt.Errorf("pal: %w", err)
	}
	return nil
}

// ResetPal restores the identity colour mapping.
func (r *Renderer) ResetPal() {
	r.state.ResetRemap()
}

// ClipRect returns the current clip rectangle.
func (r *Renderer) ClipRect() (x, y, w, h int) {
	return r.state.Clip()
}

// PalLookup returns the colour that src currently draws as.
func (r *Renderer) PalLookup(src int) (int, error) {
	if src < 0 || src >= cmdbuf.ColorCount {
		return 0, fmt.Errorf("%w: %d", ErrColorOutOfRange, src)
	}
	return r.state.Lookup(src), nil
}
