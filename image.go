// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import "github.com/gogpu/pxl/internal/font"

const (
	// ImageCount is the number of images a renderer owns.
	ImageCount = 8

	// ImageSize is the width and height of every image.
	ImageSize = 256

	// FontImage is the image holding the glyph atlas. It is read-only.
	FontImage = ImageCount - 1
)

// Image is a 256x256 grid of colour indices, one byte per pixel, mirrored
// by a GPU texture. Changes reach the GPU at the next draw pass.
type Image struct {
	pix      []byte
	dirty    bool
	readOnly bool
}

func newImage() *Image {
	return &Image{pix: make([]byte, ImageSize*ImageSize), dirty: true}
}

// newFontImage returns the read-only glyph atlas image.
func newFontImage() *Image {
	img := newImage()
	font.Rasterize(img.pix)
	img.readOnly = true
	return img
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return ImageSize }

// Height returns the image height in pixels.
func (img *Image) Height() int { return ImageSize }

// Pixels returns the row-major pixel slice and marks the image for
// re-upload. Values are colour indices; only the low four bits are used.
// For the font image, Pixels returns a copy.
func (img *Image) Pixels() []byte {
	if img.readOnly {
		out := make([]byte, len(img.pix))
		copy(out, img.pix)
		return out
	}
	img.dirty = true
	return img.pix
}

// Set stores colour index c at (x, y). Coordinates outside the image and
// writes to the font image are ignored.
func (img *Image) Set(x, y, c int) {
	if img.readOnly || x < 0 || y < 0 || x >= ImageSize || y >= ImageSize {
		return
	}
	img.pix[y*ImageSize+x] = byte(c & 0xf)
	img.dirty = true
}

// At returns the colour index at (x, y), or 0 outside the image.
func (img *Image) At(x, y int) int {
	if x < 0 || y < 0 || x >= ImageSize || y >= ImageSize {
		return 0
	}
	return int(img.pix[y*ImageSize+x])
}

// Fill sets every pixel to colour index c. Ignored for the font image.
func (img *Image) Fill(c int) {
	if img.readOnly {
		return
	}
	v := byte(c & 0xf)
	for i := range img.pix {
		img.pix[i] = v
	}
	img.dirty = true
}

// ReadOnly reports whether the image is the font atlas.
func (img *Image) ReadOnly() bool { return img.readOnly }
