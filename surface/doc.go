// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the display targets a pxl renderer presents into.
//
// A Target is anything that exposes a render-attachment texture view, its
// size and its format. The renderer never owns a Target: the host creates
// it, passes it to Render each frame, and releases it.
//
// # Target Types
//
//   - View: wraps a texture view owned by the host (a swapchain image, or a
//     texture shared through gpucontext)
//   - Offscreen: owns a texture and can read it back with Snapshot, for
//     screenshots and headless runs
//
// # Registry
//
// Named target factories can be registered and created by name:
//
//	s, err := surface.NewByName("offscreen", device, queue, surface.Options{
//	    Width: 640, Height: 480,
//	})
package surface
