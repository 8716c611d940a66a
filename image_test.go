// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"errors"
	"testing"
)

func TestImageSetAt(t *testing.T) {
	img := newImage()
	img.dirty = false

	img.Set(10, 20, 0x1b)
	if got := img.At(10, 20); got != 0xb {
		t.Errorf("At = %d, want 11 (low four bits)", got)
	}
	if !img.dirty {
		t.Error("Set did not mark the image dirty")
	}

	img.dirty = false
	img.Set(-1, 0, 3)
	img.Set(ImageSize, 0, 3)
	if img.dirty {
		t.Error("out-of-range Set marked the image dirty")
	}
	if got := img.At(ImageSize, 0); got != 0 {
		t.Errorf("out-of-range At = %d, want 0", got)
	}
	if img.Width() != ImageSize || img.Height() != ImageSize {
		t.Errorf("size = %dx%d", img.Width(), img.Height())
	}
}

func TestImageFillAndPixels(t *testing.T) {
	img := newImage()
	img.Fill(5)
	if img.At(0, 0) != 5 || img.At(ImageSize-1, ImageSize-1) != 5 {
		t.Error("Fill did not cover the image")
	}

	img.dirty = false
	pix := img.Pixels()
	if !img.dirty {
		t.Error("Pixels did not mark the image dirty")
	}
	pix[ImageSize+1] = 9
	if img.At(1, 1) != 9 {
		t.Error("Pixels does not alias the image")
	}
}

func TestFontImageReadOnly(t *testing.T) {
	r, _ := newTestRenderer(t)
	img := mustImage(t, r, FontImage)
	if !img.ReadOnly() {
		t.Fatal("font image should be read-only")
	}

	// 'A' has ink somewhere in its cell.
	sx, sy := 33*GlyphWidth, 0
	ink := false
	for y := sy; y < sy+GlyphHeight; y++ {
		for x := sx; x < sx+GlyphWidth; x++ {
			if img.At(x, y) != 0 {
				ink = true
			}
		}
	}
	if !ink {
		t.Error("glyph 'A' has no ink")
	}

	before := img.At(sx+3, sy+6)
	img.Set(sx+3, sy+6, 15-before)
	img.Fill(3)
	if img.At(sx+3, sy+6) != before {
		t.Error("font image was modified")
	}
	pix := img.Pixels()
	pix[0] = 15
	if img.At(0, 0) == 15 {
		t.Error("Pixels on the font image aliases the atlas")
	}
}

func TestRendererImageIndex(t *testing.T) {
	r, _ := newTestRenderer(t)
	for i := 0; i < ImageCount; i++ {
		if img, err := r.Image(i); err != nil || img == nil {
			t.Errorf("Image(%d) = %v, %v", i, img, err)
		}
	}
	for _, i := range []int{-1, ImageCount, 42} {
		img, err := r.Image(i)
		if !errors.Is(err, ErrImageIndexOutOfRange) {
			t.Errorf("Image(%d) error = %v, want ErrImageIndexOutOfRange", i, err)
		}
		if img != nil {
			t.Errorf("Image(%d) returned an image", i)
		}
	}
	if mustImage(t, r, 0).ReadOnly() {
		t.Error("image 0 should be writable")
	}
}
