// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNilView is returned by NewView when the host passes a nil view.
var ErrNilView = errors.New("surface: nil texture view")

// ErrInvalidSize is returned when a target is created with a non-positive
// width or height.
var ErrInvalidSize = errors.New("surface: invalid size")

// Target is a display surface the present pass renders into.
type Target interface {
	// View returns the texture view used as the colour attachment.
	View() hal.TextureView

	// Size returns the target dimensions in physical pixels.
	Size() (width, height int)

	// Format returns the texture format of View.
	Format() gputypes.TextureFormat
}

// Options configures target creation.
type Options struct {
	// Width and Height are the target size in pixels.
	Width, Height int

	// Format is the colour format. Zero selects DefaultFormat.
	Format gputypes.TextureFormat
}

// DefaultFormat is the format used when Options.Format is unset.
const DefaultFormat = gputypes.TextureFormatBGRA8Unorm

// View is a Target backed by a texture view the host owns.
type View struct {
	view          hal.TextureView
	width, height int
	format        gputypes.TextureFormat
}

// NewView wraps a host-owned texture view. The view must stay valid for as
// long as the View is passed to Render.
func NewView(view hal.TextureView, width, height int, format gputypes.TextureFormat) (*View, error) {
	if view == nil {
		return nil, ErrNilView
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &View{view: view, width: width, height: height, format: format}, nil
}

// View returns the wrapped texture view.
func (v *View) View() hal.TextureView { return v.view }

// Size returns the dimensions given to NewView.
func (v *View) Size() (width, height int) { return v.width, v.height }

// Format returns the format given to NewView.
func (v *View) Format() gputypes.TextureFormat { return v.format }

// SetView replaces the wrapped view, for hosts whose swapchain hands out a
// new view every frame.
func (v *View) SetView(view hal.TextureView, width, height int) {
	v.view = view
	v.width, v.height = width, height
}

var _ Target = (*View)(nil)
