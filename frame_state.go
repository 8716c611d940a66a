// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

// FrameState reports whether the framebuffer reflects the recorded commands.
type FrameState uint8

const (
	// FrameDirty means commands were recorded since the last draw pass.
	// The next Render runs the draw pass.
	FrameDirty FrameState = iota

	// FrameClean means the framebuffer is up to date. Render only presents.
	FrameClean
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameDirty:
		return "Dirty"
	case FrameClean:
		return "Clean"
	default:
		return "Unknown"
	}
}
