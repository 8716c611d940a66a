// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"fmt"

	"github.com/gogpu/pxl/internal/cmdbuf"
	"github.com/gogpu/pxl/surface"
)

// framePasses is the GPU side of a Renderer.
type framePasses interface {
	UploadImage(i int, pix []byte) error
	UploadRecords(data []byte) error
	Draw(count int, palette Palette) error
	Present(target surface.Target, vp Viewport, clear uint32) error
	Destroy()
}

// Renderer records the drawing calls of a logical frame and renders them.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	passes framePasses

	// release runs after the passes are destroyed, for renderers that own
	// their device.
	release func()

	width, height int

	cmds  *cmdbuf.Buffer
	state cmdbuf.State
	frame FrameState

	// uploaded is the record count sent by the last End of this frame. It is
	// zero between Begin and End.
	uploaded int

	images [ImageCount]*Image

	closed bool
}

// newRenderer builds a renderer over passes. The font atlas is generated
// here and uploaded by the first draw pass.
func newRenderer(passes framePasses, width, height int) *Renderer {
	r := &Renderer{
		passes: passes,
		width:  width,
		height: height,
		cmds:   cmdbuf.NewBuffer(),
		state:  cmdbuf.NewState(width, height),
		frame:  FrameDirty,
	}
	for i := 0; i < FontImage; i++ {
		r.images[i] = newImage()
	}
	r.images[FontImage] = newFontImage()
	return r
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Size returns the framebuffer dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Begin starts a logical frame: the command buffer is emptied and the
// renderer becomes dirty. Clip and palette remap state carry over.
func (r *Renderer) Begin() {
	r.cmds.Reset()
	r.uploaded = 0
	r.frame = FrameDirty
}

// End uploads the commands recorded since Begin.
func (r *Renderer) End() error {
	if r.closed {
		return ErrRendererClosed
	}
	if n := r.cmds.Dropped(); n > 0 {
		slogger().Warn("pxl: command buffer full, last command overwritten",
			"capacity", cmdbuf.MaxCommands, "dropped", n)
	}
	if err := r.passes.UploadRecords(r.cmds.Encode()); err != nil {
		return fmt.Errorf("upload commands: %w", err)
	}
	r.uploaded = r.cmds.Len()
	slogger().Debug("pxl: frame recorded", "commands", r.cmds.Len())
	return nil
}

// Render draws the recorded frame into the framebuffer if the renderer is
// dirty, then presents the framebuffer into vp on target after clearing
// target to clear (0xRRGGBB). An empty viewport only clears. Only commands
// uploaded by End are drawn; a frame whose End was skipped draws nothing.
func (r *Renderer) Render(target surface.Target, vp Viewport, pal Palette, clear uint32) error {
	if r.closed {
		return ErrRendererClosed
	}
	if target == nil {
		return ErrNilTarget
	}

	if r.frame == FrameDirty {
		if err := r.uploadImages(); err != nil {
			return err
		}
		if err := r.passes.Draw(r.uploaded, pal); err != nil {
			return fmt.Errorf("draw pass: %w", err)
		}
		r.frame = FrameClean
	}

	if err := r.passes.Present(target, vp, clear); err != nil {
		return fmt.Errorf("present pass: %w", err)
	}
	return nil
}

// uploadImages sends every dirty image to the GPU.
func (r *Renderer) uploadImages() error {
	for i, img := range r.images {
		if !img.dirty {
			continue
		}
		if err := r.passes.UploadImage(i, img.pix); err != nil {
			return fmt.Errorf("upload image %d: %w", i, err)
		}
		img.dirty = false
		slogger().Debug("pxl: image uploaded", "image", i)
	}
	return nil
}

// State returns the frame state.
func (r *Renderer) State() FrameState {
	return r.frame
}

// DrawCount returns the number of commands recorded since Begin.
func (r *Renderer) DrawCount() int {
	return r.cmds.Len()
}

// Image returns image i.
func (r *Renderer) Image(i int) (*Image, error) {
	if !validImage(i) {
		return nil, fmt.Errorf("%w: %d", ErrImageIndexOutOfRange, i)
	}
	return r.images[i], nil
}

func validImage(i int) bool {
	return i >= 0 && i < ImageCount
}

// Close releases all GPU resources in reverse creation order. Safe to call
// multiple times.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.passes.Destroy()
	if r.release != nil {
		r.release()
		r.release = nil
	}
	slogger().Info("pxl: renderer closed")
	return nil
}
