// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"errors"

	"github.com/gogpu/pxl/internal/cmdbuf"
)

var (
	// ErrColorOutOfRange is returned by Pal when a colour index is outside
	// 0..15.
	ErrColorOutOfRange = cmdbuf.ErrColorOutOfRange

	// ErrPaletteSlotOutOfRange is returned by Palette.Set when the slot is
	// outside 0..PaletteSize-1.
	ErrPaletteSlotOutOfRange = errors.New("pxl: palette slot out of range")

	// ErrImageIndexOutOfRange is returned by Renderer.Image when the index is
	// outside 0..ImageCount-1. Blt drops calls with such an index.
	ErrImageIndexOutOfRange = errors.New("pxl: image index out of range")

	// ErrInvalidDimensions is returned when the framebuffer size is not
	// positive.
	ErrInvalidDimensions = errors.New("pxl: invalid framebuffer dimensions")

	// ErrNilProvider is returned by New when the device provider is nil.
	ErrNilProvider = errors.New("pxl: nil device provider")

	// ErrNoHAL is returned when no HAL device is available: the provider
	// does not expose one, or the module was built with the nogpu tag.
	ErrNoHAL = errors.New("pxl: HAL device not available")

	// ErrRendererClosed is returned by operations on a closed Renderer.
	ErrRendererClosed = errors.New("pxl: renderer closed")

	// ErrNilTarget is returned by Render when the display target is nil.
	ErrNilTarget = errors.New("pxl: nil display target")
)
