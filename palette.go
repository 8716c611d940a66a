// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import "fmt"

// PaletteSize is the number of display colours.
const PaletteSize = 8

// Palette maps the low three bits of a remapped colour index to a packed
// 0xRRGGBB colour.
type Palette [PaletteSize]uint32

// DefaultPalette is a small general-purpose palette.
var DefaultPalette = Palette{
	0x000000, // black
	0x1d2b53, // navy
	0x7e2553, // plum
	0x008751, // green
	0xab5236, // brown
	0x29adff, // sky
	0xffec27, // yellow
	0xfff1e8, // white
}

// Set stores colour c in slot.
func (p *Palette) Set(slot int, c uint32) error {
	if slot < 0 || slot >= PaletteSize {
		return fmt.Errorf("%w: %d", ErrPaletteSlotOutOfRange, slot)
	}
	p[slot] = c & 0xffffff
	return nil
}

// RGB splits slot's colour into components. Out-of-range slots yield black.
func (p *Palette) RGB(slot int) (r, g, b uint8) {
	if slot < 0 || slot >= PaletteSize {
		return 0, 0, 0
	}
	c := p[slot]
	return uint8(c >> 16), uint8(c >> 8), uint8(c) //nolint:gosec // truncation intended
}
