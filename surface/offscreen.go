// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package surface

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxl/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Offscreen is a Target that owns its texture. The texture can be read
// back to the CPU with Snapshot.
type Offscreen struct {
	device hal.Device
	queue  hal.Queue

	width, height int
	format        gputypes.TextureFormat

	texture hal.Texture
	view    hal.TextureView

	// Timeout bounds the readback wait in Snapshot.
	Timeout time.Duration
}

// NewOffscreen creates an offscreen target. Only RGBA8Unorm and BGRA8Unorm
// formats are supported.
func NewOffscreen(device hal.Device, queue hal.Queue, opts Options) (*Offscreen, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	format := opts.Format
	if format == gputypes.TextureFormatUndefined {
		format = DefaultFormat
	}
	if format != gputypes.TextureFormatRGBA8Unorm && format != gputypes.TextureFormatBGRA8Unorm {
		return nil, fmt.Errorf("surface: unsupported offscreen format %v", format)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pxl_offscreen",
		Size:          hal.Extent3D{Width: uint32(opts.Width), Height: uint32(opts.Height), DepthOrArrayLayers: 1}, //nolint:gosec // checked positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "pxl_offscreen_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create offscreen view: %w", err)
	}

	return &Offscreen{
		device:  device,
		queue:   queue,
		width:   opts.Width,
		height:  opts.Height,
		format:  format,
		texture: tex,
		view:    view,
		Timeout: gpu.DefaultSubmitTimeout,
	}, nil
}

// View returns the offscreen texture view, or nil after Close.
func (o *Offscreen) View() hal.TextureView { return o.view }

// Size returns the target dimensions.
func (o *Offscreen) Size() (width, height int) { return o.width, o.height }

// Format returns the texture format.
func (o *Offscreen) Format() gputypes.TextureFormat { return o.format }

// Snapshot reads the target back into an RGBA image. BGRA targets are
// swizzled.
func (o *Offscreen) Snapshot() (*image.RGBA, error) {
	if o.texture == nil {
		return nil, fmt.Errorf("surface: snapshot of closed offscreen target")
	}
	data, err := gpu.ReadTexture(o.device, o.queue, o.texture,
		uint32(o.width), uint32(o.height), o.Timeout) //nolint:gosec // checked positive
	if err != nil {
		return nil, fmt.Errorf("offscreen readback: %w", err)
	}
	if o.format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(data); i += 4 {
			data[i], data[i+2] = data[i+2], data[i]
		}
	}
	return &image.RGBA{
		Pix:    data,
		Stride: o.width * 4,
		Rect:   image.Rect(0, 0, o.width, o.height),
	}, nil
}

// Close releases the texture and view. Safe to call multiple times.
func (o *Offscreen) Close() error {
	if o.view != nil {
		o.device.DestroyTextureView(o.view)
		o.view = nil
	}
	if o.texture != nil {
		o.device.DestroyTexture(o.texture)
		o.texture = nil
	}
	return nil
}

var _ Target = (*Offscreen)(nil)

func init() {
	Register("offscreen", 10, func(device hal.Device, queue hal.Queue, opts Options) (Target, error) {
		o, err := NewOffscreen(device, queue, opts)
		if err != nil {
			return nil, err
		}
		return o, nil
	}, nil)
}
