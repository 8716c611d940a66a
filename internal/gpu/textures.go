//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ImageCount is the number of index images bound to the draw pass.
const ImageCount = 8

// frameFormat is the format of the frame and scale textures.
const frameFormat = gputypes.TextureFormatRGBA8Unorm

// createTexture2D creates a single-sample 2D texture and a view over it.
// On failure nothing is left allocated.
func createTexture2D(device hal.Device, label string, w, h uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

// ImageTextures holds the GPU copies of the index images. Each texel is an
// R8Unorm value whose low four bits are the colour index.
type ImageTextures struct {
	device hal.Device
	queue  hal.Queue

	width, height uint32

	textures [ImageCount]hal.Texture
	views    [ImageCount]hal.TextureView
}

// NewImageTextures allocates ImageCount textures of width x height.
func NewImageTextures(device hal.Device, queue hal.Queue, width, height uint32) (*ImageTextures, error) {
	t := &ImageTextures{device: device, queue: queue, width: width, height: height}
	for i := range t.textures {
		tex, view, err := createTexture2D(device, fmt.Sprintf("pxl_image%d", i), width, height,
			gputypes.TextureFormatR8Unorm,
			gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
		if err != nil {
			t.Destroy()
			return nil, err
		}
		t.textures[i] = tex
		t.views[i] = view
	}
	return t, nil
}

// Upload replaces the contents of image i with pix, a row-major
// width x height slice of colour indices.
func (t *ImageTextures) Upload(i int, pix []byte) error {
	if i < 0 || i >= ImageCount {
		return fmt.Errorf("upload image %d: index out of range", i)
	}
	if want := int(t.width) * int(t.height); len(pix) != want {
		return fmt.Errorf("upload image %d: got %d bytes, want %d", i, len(pix), want)
	}
	err := t.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.textures[i], MipLevel: 0},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("upload image %d: %w", i, err)
	}
	return nil
}

// TextureOf returns the texture backing image i, or nil when i is out of range.
func (t *ImageTextures) TextureOf(i int) hal.Texture {
	if i < 0 || i >= ImageCount {
		return nil
	}
	return t.textures[i]
}

// Size returns the dimensions shared by all images.
func (t *ImageTextures) Size() (width, height uint32) {
	return t.width, t.height
}

// Destroy releases all textures in reverse creation order. Safe to call
// multiple times.
func (t *ImageTextures) Destroy() {
	for i := ImageCount - 1; i >= 0; i-- {
		if t.views[i] != nil {
			t.device.DestroyTextureView(t.views[i])
			t.views[i] = nil
		}
		if t.textures[i] != nil {
			t.device.DestroyTexture(t.textures[i])
			t.textures[i] = nil
		}
	}
}

// FrameTextures holds the logical framebuffer the draw pass renders into and
// the scale texture the present pass samples from.
type FrameTextures struct {
	device hal.Device

	width, height uint32

	frameTex  hal.Texture
	frameView hal.TextureView
	scaleTex  hal.Texture
	scaleView hal.TextureView

	// cleared reports whether the frame texture holds defined contents.
	// The first draw pass clears it; later passes load it.
	cleared bool
}

// NewFrameTextures allocates the frame and scale textures.
func NewFrameTextures(device hal.Device, width, height uint32) (*FrameTextures, error) {
	f := &FrameTextures{device: device, width: width, height: height}
	usage := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc

	var err error
	f.frameTex, f.frameView, err = createTexture2D(device, "pxl_frame", width, height, frameFormat, usage)
	if err != nil {
		return nil, err
	}
	f.scaleTex, f.scaleView, err = createTexture2D(device, "pxl_scale", width, height, frameFormat, usage)
	if err != nil {
		f.Destroy()
		return nil, err
	}
	return f, nil
}

// Size returns the framebuffer dimensions.
func (f *FrameTextures) Size() (width, height uint32) {
	return f.width, f.height
}

// Destroy releases both textures in reverse creation order. Safe to call
// multiple times.
func (f *FrameTextures) Destroy() {
	if f.scaleView != nil {
		f.device.DestroyTextureView(f.scaleView)
		f.scaleView = nil
	}
	if f.scaleTex != nil {
		f.device.DestroyTexture(f.scaleTex)
		f.scaleTex = nil
	}
	if f.frameView != nil {
		f.device.DestroyTextureView(f.frameView)
		f.frameView = nil
	}
	if f.frameTex != nil {
		f.device.DestroyTexture(f.frameTex)
		f.frameTex = nil
	}
}
