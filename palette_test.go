// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"errors"
	"testing"
)

func TestPaletteSet(t *testing.T) {
	var p Palette
	if err := p.Set(3, 0x1d2b53); err != nil {
		t.Fatalf("Set: %v", err)
	}
	r, g, b := p.RGB(3)
	if r != 0x1d || g != 0x2b || b != 0x53 {
		t.Errorf("RGB(3) = %d,%d,%d", r, g, b)
	}

	if err := p.Set(0, 0xff123456); err != nil {
		t.Fatal(err)
	}
	if p[0] != 0x123456 {
		t.Errorf("Set kept bits above 24: %#x", p[0])
	}

	for _, slot := range []int{-1, PaletteSize} {
		if err := p.Set(slot, 0); !errors.Is(err, ErrPaletteSlotOutOfRange) {
			t.Errorf("Set(%d): expected ErrPaletteSlotOutOfRange, got %v", slot, err)
		}
	}
	if r, g, b := p.RGB(PaletteSize); r != 0 || g != 0 || b != 0 {
		t.Error("RGB out of range should be black")
	}
}
