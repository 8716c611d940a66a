// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package pxl

import (
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// New returns ErrNoHAL: the module was built without GPU support.
func New(gpucontext.DeviceProvider, int, int, ...Option) (*Renderer, error) {
	return nil, ErrNoHAL
}

// NewWithDevice returns ErrNoHAL: the module was built without GPU support.
func NewWithDevice(hal.Device, hal.Queue, int, int, ...Option) (*Renderer, error) {
	return nil, ErrNoHAL
}

// NewHeadless returns ErrNoHAL: the module was built without GPU support.
func NewHeadless(int, int, ...Option) (*Renderer, error) {
	return nil, ErrNoHAL
}

// MustNew panics: the module was built without GPU support.
func MustNew(gpucontext.DeviceProvider, int, int, ...Option) *Renderer {
	panic(ErrNoHAL)
}

// HAL returns nils.
func (r *Renderer) HAL() (hal.Device, hal.Queue) {
	return nil, nil
}

func propagateLogger(*slog.Logger) {}
