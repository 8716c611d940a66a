// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pxl is the frame renderer of a fantasy-console pixel-art engine.
//
// A Renderer turns the drawing calls of one logical frame (pixels, lines,
// rectangles, circles, sprite blits and text) into a packed command buffer,
// executes it as a single instanced GPU draw into a small logical
// framebuffer, and scales the result onto a display target with
// nearest-neighbour sampling.
//
// # Quick Start
//
//	r, err := pxl.New(provider, 160, 120)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	pal := pxl.DefaultPalette
//
//	r.Begin()
//	r.Cls(0)
//	r.Rect(10, 10, 40, 30, 2)
//	r.Circ(80, 60, 12, 5)
//	r.Text(4, 100, "HELLO", 7)
//	if err := r.End(); err != nil {
//	    log.Fatal(err)
//	}
//
//	vp := pxl.Letterbox(winW, winH, 160, 120)
//	if err := r.Render(target, vp, pal, 0x000000); err != nil {
//	    log.Fatal(err)
//	}
//
// # Frames
//
// Begin starts a logical frame and marks the renderer dirty. End uploads the
// recorded commands. Render draws them into the framebuffer only when the
// renderer is dirty and always presents the framebuffer, so a host can
// present the same frame several times (for example after a window resize)
// without recording it again. The framebuffer keeps its contents between
// frames: a frame that does not call Cls draws over the previous one.
//
// # Colours
//
// Drawing calls take colour indices 0..15. Pal remaps one index to another
// for all calls that follow; the remapped index selects one of the eight
// Palette slots (index & 7), each a packed 0xRRGGBB colour.
//
// # Capacity
//
// One frame holds up to 10,000 commands. Further calls in the same frame
// overwrite the last command; the renderer logs a warning at End.
//
// # Thread Safety
//
// A Renderer is not safe for concurrent use. All calls must come from the
// goroutine that owns the GPU device.
package pxl
