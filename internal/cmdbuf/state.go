package cmdbuf

import (
	"errors"
	"fmt"
)

// ColorCount is the number of colour indices a palette word block can remap.
const ColorCount = 16

// PaletteWords is the number of 16-bit words packing the remap table.
const PaletteWords = 4

// BlockSize is the number of numeric fields in the clip/palette block as the
// draw shader sees it: four clip fields followed by the palette words.
const BlockSize = 4 + PaletteWords

// ErrColorOutOfRange is returned by Remap when a colour index is outside
// 0..ColorCount-1. Packing such a value would corrupt neighbouring nibbles.
var ErrColorOutOfRange = errors.New("pxl: colour index out of range")

// identityPalette maps every colour to itself: nibble i of the sequence holds i.
var identityPalette = [PaletteWords]uint16{0x3210, 0x7654, 0xba98, 0xfedc}

// State is the clip rectangle and palette remap table stamped into every
// record. It is a plain value: a record keeps the copy it was encoded with,
// so later SetClip/Remap calls never reach records already in the buffer.
type State struct {
	ClipX, ClipY, ClipW, ClipH int32

	// Pal holds colour c's destination index in nibble c%4 of word c/4.
	Pal [PaletteWords]uint16
}

// NewState returns a state clipping to the full width x height framebuffer
// with the identity palette.
func NewState(width, height int) State {
	var s State
	s.ResetClip(width, height)
	s.ResetRemap()
	return s
}

// SetClip sets the clip rectangle.
func (s *State) SetClip(x, y, w, h int) {
	s.ClipX = int32(x) //nolint:gosec // framebuffer coordinates fit int32
	s.ClipY = int32(y) //nolint:gosec // framebuffer coordinates fit int32
	s.ClipW = int32(w) //nolint:gosec // framebuffer coordinates fit int32
	s.ClipH = int32(h) //nolint:gosec // framebuffer coordinates fit int32
}

// ResetClip restores the clip rectangle to (0, 0, width, height).
func (s *State) ResetClip(width, height int) {
	s.SetClip(0, 0, width, height)
}

// Clip returns the clip rectangle.
func (s *State) Clip() (x, y, w, h int) {
	return int(s.ClipX), int(s.ClipY), int(s.ClipW), int(s.ClipH)
}

// Remap makes colour src draw as colour dst. Only the nibble addressed by src
// changes; the other three nibbles of its word are preserved.
func (s *State) Remap(src, dst int) error {
	if src < 0 || src >= ColorCount {
		return fmt.Errorf("%w: source %d", ErrColorOutOfRange, src)
	}
	if dst < 0 || dst >= ColorCount {
		return fmt.Errorf("%w: destination %d", ErrColorOutOfRange, dst)
	}
	word := src / 4
	shift := uint((src % 4) * 4)
	s.Pal[word] = s.Pal[word]&^(0xf<<shift) | uint16(dst)<<shift //nolint:gosec // dst checked above
	return nil
}

// ResetRemap restores the identity mapping for all colours.
func (s *State) ResetRemap() {
	s.Pal = identityPalette
}

// Lookup returns the colour that c is currently remapped to.
// c must be in 0..ColorCount-1.
func (s *State) Lookup(c int) int {
	return int(s.Pal[c/4]>>uint((c%4)*4)) & 0xf
}

// Block returns the eight fields in shader order: clip x, y, w, h, then the
// four palette words. Colour c's word is therefore Block()[c/4+4].
func (s *State) Block() [BlockSize]int32 {
	return [BlockSize]int32{
		s.ClipX, s.ClipY, s.ClipW, s.ClipH,
		int32(s.Pal[0]), int32(s.Pal[1]), int32(s.Pal[2]), int32(s.Pal[3]),
	}
}
