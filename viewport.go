// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

// Viewport is the rectangle of the display target, in physical pixels,
// that the framebuffer is presented into.
type Viewport struct {
	X, Y, W, H int
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// Letterbox returns the largest viewport with the framebuffer's aspect
// ratio that fits a winW x winH window, centred. When the window can hold
// at least one whole copy, the scale is an integer so every logical pixel
// is the same size. Smaller windows get a fractional scale.
func Letterbox(winW, winH, fbW, fbH int) Viewport {
	if winW <= 0 || winH <= 0 || fbW <= 0 || fbH <= 0 {
		return Viewport{}
	}

	scale := min(winW/fbW, winH/fbH)
	var w, h int
	if scale >= 1 {
		w, h = fbW*scale, fbH*scale
	} else {
		sx := float64(winW) / float64(fbW)
		sy := float64(winH) / float64(fbH)
		s := min(sx, sy)
		w = max(int(float64(fbW)*s), 1)
		h = max(int(float64(fbH)*s), 1)
	}
	return Viewport{
		X: (winW - w) / 2,
		Y: (winH - h) / 2,
		W: w,
		H: h,
	}
}
