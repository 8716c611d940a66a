//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Config describes the GPU resources of one renderer.
type Config struct {
	// Width and Height are the logical framebuffer size.
	Width, Height uint32

	// ImageWidth and ImageHeight are the size of every index image.
	ImageWidth, ImageHeight uint32

	// PresentFormat is the initial display target format.
	PresentFormat gputypes.TextureFormat

	// SubmitTimeout bounds each wait for the GPU. Zero means
	// DefaultSubmitTimeout.
	SubmitTimeout time.Duration
}

// Viewport is the display-space rectangle the present pass draws into.
type Viewport struct {
	X, Y, Width, Height float32
}

// Passes owns every GPU object of a renderer and runs its two passes.
type Passes struct {
	device hal.Device
	queue  hal.Queue

	timeout time.Duration

	images *ImageTextures
	frames *FrameTextures
	draw   *DrawPipeline
	scale  *ScalePipeline

	uniforms DrawUniforms

	// scaleWritten reports whether the scale texture has been rendered to.
	scaleWritten bool
}

// NewPasses creates all GPU resources described by cfg. On failure,
// everything created so far is destroyed in reverse order.
func NewPasses(device hal.Device, queue hal.Queue, cfg Config) (*Passes, error) {
	if cfg.Width == 0 || cfg.Height == 0 || cfg.ImageWidth == 0 || cfg.ImageHeight == 0 {
		return nil, fmt.Errorf("gpu: invalid dimensions %dx%d (images %dx%d)",
			cfg.Width, cfg.Height, cfg.ImageWidth, cfg.ImageHeight)
	}
	p := &Passes{device: device, queue: queue, timeout: cfg.SubmitTimeout}
	if p.timeout <= 0 {
		p.timeout = DefaultSubmitTimeout
	}

	var err error
	if p.images, err = NewImageTextures(device, queue, cfg.ImageWidth, cfg.ImageHeight); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create image textures: %w", err)
	}
	if p.frames, err = NewFrameTextures(device, cfg.Width, cfg.Height); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create frame textures: %w", err)
	}
	if p.draw, err = NewDrawPipeline(device, queue, p.images); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create draw pipeline: %w", err)
	}
	if p.scale, err = NewScalePipeline(device, queue, p.frames, cfg.PresentFormat); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create scale pipeline: %w", err)
	}

	p.uniforms.Width, p.uniforms.Height = cfg.Width, cfg.Height
	for i := range p.uniforms.ImageSizes {
		p.uniforms.ImageSizes[i] = [2]uint32{cfg.ImageWidth, cfg.ImageHeight}
	}

	slogger().Debug("pxl: gpu passes created",
		"width", cfg.Width, "height", cfg.Height, "format", cfg.PresentFormat)
	return p, nil
}

// Images returns the index image textures.
func (p *Passes) Images() *ImageTextures { return p.images }

// UploadImage replaces image i on the GPU.
func (p *Passes) UploadImage(i int, pix []byte) error {
	return p.images.Upload(i, pix)
}

// UploadRecords copies an encoded command buffer prefix to the GPU.
func (p *Passes) UploadRecords(data []byte) error {
	return p.draw.UploadRecords(data)
}

// Draw renders count records into the frame texture, loading the previous
// frame's pixels, then captures the result into the scale texture.
func (p *Passes) Draw(count int, palette [PaletteSize]uint32) error {
	p.uniforms.Palette = palette
	if err := p.draw.WriteUniforms(&p.uniforms); err != nil {
		return err
	}

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "pxl_draw"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pxl_draw"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	f := p.frames
	loadOp := gputypes.LoadOpClear
	if f.cleared {
		loadOp = gputypes.LoadOpLoad
		transition(encoder, f.frameTex, gputypes.TextureUsageTextureBinding, gputypes.TextureUsageRenderAttachment)
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pxl_draw_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.frameView,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	p.draw.Record(rp, uint32(count)) //nolint:gosec // count <= cmdbuf.MaxCommands
	rp.End()
	transition(encoder, f.frameTex, gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageTextureBinding)

	if p.scaleWritten {
		transition(encoder, f.scaleTex, gputypes.TextureUsageTextureBinding, gputypes.TextureUsageRenderAttachment)
	}
	rp = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pxl_capture_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.scaleView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	p.scale.RecordCapture(rp)
	rp.End()
	transition(encoder, f.scaleTex, gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageTextureBinding)

	if err := submitAndWait(p.device, p.queue, encoder, p.timeout); err != nil {
		return fmt.Errorf("draw pass: %w", err)
	}
	f.cleared = true
	p.scaleWritten = true
	return nil
}

// Present clears view to clear (0xRRGGBB) and draws the scale texture into
// vp. format is the view's texture format.
func (p *Passes) Present(view hal.TextureView, format gputypes.TextureFormat, vp Viewport, clear uint32) error {
	if err := p.scale.ensurePresentPipeline(format); err != nil {
		return err
	}

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "pxl_present"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pxl_present"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pxl_present_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearColor(clear),
		}},
	})
	if vp.Width > 0 && vp.Height > 0 {
		rp.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, 0, 1)
		p.scale.RecordPresent(rp)
	}
	rp.End()

	if err := submitAndWait(p.device, p.queue, encoder, p.timeout); err != nil {
		return fmt.Errorf("present pass: %w", err)
	}
	return nil
}

// clearColor converts a packed 0xRRGGBB colour to an opaque clear value.
func clearColor(c uint32) gputypes.Color {
	return gputypes.Color{
		R: float64((c>>16)&0xff) / 255,
		G: float64((c>>8)&0xff) / 255,
		B: float64(c&0xff) / 255,
		A: 1,
	}
}

// Destroy releases every GPU object in reverse creation order. Safe to call
// multiple times.
func (p *Passes) Destroy() {
	if p.scale != nil {
		p.scale.Destroy()
		p.scale = nil
	}
	if p.draw != nil {
		p.draw.Destroy()
		p.draw = nil
	}
	if p.frames != nil {
		p.frames.Destroy()
		p.frames = nil
	}
	if p.images != nil {
		p.images.Destroy()
		p.images = nil
	}
}
