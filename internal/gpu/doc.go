//go:build !nogpu

// Package gpu implements the GPU side of the pxl frame renderer on top of the
// gogpu/wgpu HAL (zero CGO; Vulkan, Metal, DX12, GLES or noop backends).
//
// # Architecture Overview
//
// One logical frame flows through two render programs:
//
//	cmdbuf records -> DrawPipeline (instanced, into frame texture)
//	               -> ScalePipeline capture (frame texture -> scale texture)
//	               -> ScalePipeline present (scale texture -> display view)
//
// Key components:
//
//   - ImageTextures: the eight R8Unorm index images, uploaded when dirty
//   - FrameTextures: the logical framebuffer and the scale texture
//   - DrawPipeline: draw.wgsl, one instance per command record
//   - ScalePipeline: scale.wgsl, nearest-neighbour textured strip
//   - Passes: owns all of the above and runs the draw and present passes
//
// # Coordinate Convention
//
// The draw pass maps logical row 0 to the bottom of the frame texture. The
// capture geometry copies it unchanged and the present geometry flips it, so
// the display shows row 0 at the top.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. The renderer drives it
// from a single goroutine.
package gpu
