// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package pxl

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxl/internal/gpu"
	"github.com/gogpu/pxl/surface"
	"github.com/gogpu/wgpu/hal"
)

// gpuPasses adapts gpu.Passes to the renderer.
type gpuPasses struct {
	*gpu.Passes
	device hal.Device
	queue  hal.Queue
}

func (p *gpuPasses) Draw(count int, palette Palette) error {
	return p.Passes.Draw(count, palette)
}

func (p *gpuPasses) Present(target surface.Target, vp Viewport, clear uint32) error {
	var gvp gpu.Viewport
	if !vp.Empty() {
		gvp = gpu.Viewport{
			X:      float32(vp.X),
			Y:      float32(vp.Y),
			Width:  float32(vp.W),
			Height: float32(vp.H),
		}
	}
	return p.Passes.Present(target.View(), target.Format(), gvp, clear)
}

// halProvider is implemented by device providers that expose their HAL
// objects, such as gogpu applications.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// New creates a renderer with a width x height framebuffer on the device
// shared by provider. The provider's surface format is the initial present
// format unless WithSurfaceFormat is given.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HalDevice/HalQueue", ErrNoHAL)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoHAL)
	}

	o := defaultOptions()
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		o.surfaceFormat = f
	}
	for _, opt := range opts {
		opt(&o)
	}
	slogger().Info("pxl: using shared GPU device", "adapter", provider.AdapterInfo().Name)
	return newGPURenderer(device, queue, width, height, o)
}

// NewWithDevice creates a renderer on a HAL device the caller owns. The
// device must outlive the renderer.
func NewWithDevice(device hal.Device, queue hal.Queue, width, height int, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoHAL
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newGPURenderer(device, queue, width, height, o)
}

// NewHeadless opens its own device on the backend chosen with WithBackend
// and creates a renderer on it. Close releases the device too. Use
// HAL to create targets on the same device.
func NewHeadless(width, height int, opts ...Option) (*Renderer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	dev, err := gpu.OpenDevice(o.backend)
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	r, err := newGPURenderer(dev.Device, dev.Queue, width, height, o)
	if err != nil {
		dev.Close()
		return nil, err
	}
	r.release = dev.Close
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(provider gpucontext.DeviceProvider, width, height int, opts ...Option) *Renderer {
	r, err := New(provider, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func newGPURenderer(device hal.Device, queue hal.Queue, width, height int, o options) (*Renderer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	passes, err := gpu.NewPasses(device, queue, gpu.Config{
		Width:         uint32(width),  //nolint:gosec // checked positive
		Height:        uint32(height), //nolint:gosec // checked positive
		ImageWidth:    ImageSize,
		ImageHeight:   ImageSize,
		PresentFormat: o.surfaceFormat,
		SubmitTimeout: o.submitTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create gpu passes: %w", err)
	}
	r := newRenderer(&gpuPasses{Passes: passes, device: device, queue: queue}, width, height)
	slogger().Info("pxl: renderer created", "width", width, "height", height)
	return r, nil
}

// HAL returns the device and queue the renderer draws with, or nils after
// Close.
func (r *Renderer) HAL() (hal.Device, hal.Queue) {
	p, ok := r.passes.(*gpuPasses)
	if !ok || r.closed {
		return nil, nil
	}
	return p.device, p.queue
}

func propagateLogger(l *slog.Logger) {
	gpu.SetLogger(l)
}
