// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"time"

	"github.com/gogpu/gputypes"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := pxl.New(provider, 160, 120,
//	    pxl.WithSubmitTimeout(2*time.Second),
//	)
type Option func(*options)

type options struct {
	surfaceFormat gputypes.TextureFormat
	submitTimeout time.Duration
	backend       gputypes.Backend
}

func defaultOptions() options {
	return options{
		surfaceFormat: gputypes.TextureFormatBGRA8Unorm,
		submitTimeout: 5 * time.Second,
		backend:       gputypes.BackendVulkan,
	}
}

// WithSurfaceFormat sets the display format the present pipeline is first
// built for. Render rebuilds it when a target reports a different format.
// New uses the provider's SurfaceFormat unless this option is given.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.surfaceFormat = f
	}
}

// WithSubmitTimeout bounds how long a pass waits for the GPU.
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.submitTimeout = d
		}
	}
}

// WithBackend selects the HAL backend NewHeadless opens. The default is
// Vulkan; gputypes.BackendEmpty selects the noop backend.
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}
