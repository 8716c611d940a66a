// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	return openDev.Device, openDev.Queue, func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
}

func TestNewView(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	off, err := NewOffscreen(device, nil, Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewOffscreen: %v", err)
	}
	defer off.Close()

	v, err := NewView(off.View(), 640, 480, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if w, h := v.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if v.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v", v.Format())
	}
	v.SetView(off.View(), 800, 600)
	if w, h := v.Size(); w != 800 || h != 600 {
		t.Errorf("Size after SetView = %dx%d", w, h)
	}

	if _, err := NewView(nil, 1, 1, DefaultFormat); !errors.Is(err, ErrNilView) {
		t.Errorf("expected ErrNilView, got %v", err)
	}
	if _, err := NewView(off.View(), 0, 1, DefaultFormat); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestOffscreenDefaults(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	off, err := NewOffscreen(device, queue, Options{Width: 320, Height: 200})
	if err != nil {
		t.Fatalf("NewOffscreen: %v", err)
	}
	defer off.Close()

	if off.Format() != DefaultFormat {
		t.Errorf("Format = %v, want %v", off.Format(), DefaultFormat)
	}
	if w, h := off.Size(); w != 320 || h != 200 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if off.View() == nil {
		t.Error("View is nil")
	}
}

func TestOffscreenInvalid(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewOffscreen(device, queue, Options{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewOffscreen(device, queue, Options{Width: 10, Height: 10, Format: gputypes.TextureFormatR8Unorm}); err == nil {
		t.Error("expected error for R8 offscreen target")
	}
}

func TestOffscreenSnapshot(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	for _, format := range []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm} {
		t.Run(format.String(), func(t *testing.T) {
			off, err := NewOffscreen(device, queue, Options{Width: 33, Height: 7, Format: format})
			if err != nil {
				t.Fatalf("NewOffscreen: %v", err)
			}
			img, err := off.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if img.Bounds().Dx() != 33 || img.Bounds().Dy() != 7 {
				t.Errorf("bounds = %v", img.Bounds())
			}
			if len(img.Pix) != 33*7*4 {
				t.Errorf("len(Pix) = %d", len(img.Pix))
			}

			if err := off.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
			if err := off.Close(); err != nil {
				t.Errorf("second Close: %v", err)
			}
			if _, err := off.Snapshot(); err == nil {
				t.Error("Snapshot after Close should fail")
			}
		})
	}
}

func TestOffscreenRegistered(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	target, err := NewByName("offscreen", device, queue, Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("NewByName(offscreen): %v", err)
	}
	off, ok := target.(*Offscreen)
	if !ok {
		t.Fatalf("got %T, want *Offscreen", target)
	}
	off.Close()

	target, err = NewByName("offscreen", device, queue, Options{Width: 0, Height: 8})
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewByName with zero width: err = %v, want ErrInvalidSize", err)
	}
	if target != nil {
		t.Errorf("failed NewByName returned non-nil target %#v", target)
	}
}
