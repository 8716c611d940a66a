//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestPasses(t *testing.T) (*Passes, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	p, err := NewPasses(device, queue, Config{
		Width: 128, Height: 128,
		ImageWidth: 256, ImageHeight: 256,
		PresentFormat: gputypes.TextureFormatBGRA8Unorm,
	})
	if err != nil {
		cleanup()
		t.Fatalf("NewPasses: %v", err)
	}
	return p, func() {
		p.Destroy()
		cleanup()
	}
}

func TestNewPassesInvalidDimensions(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0, Height: 10, ImageWidth: 256, ImageHeight: 256}},
		{"zero height", Config{Width: 10, Height: 0, ImageWidth: 256, ImageHeight: 256}},
		{"zero image", Config{Width: 10, Height: 10, ImageWidth: 0, ImageHeight: 256}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPasses(device, queue, tt.cfg)
			if err == nil {
				p.Destroy()
				t.Fatal("expected error")
			}
			if !contains(err.Error(), "invalid dimensions") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPassesDefaultTimeout(t *testing.T) {
	p, cleanup := newTestPasses(t)
	defer cleanup()
	if p.timeout != DefaultSubmitTimeout {
		t.Errorf("timeout = %v, want %v", p.timeout, DefaultSubmitTimeout)
	}
	if p.uniforms.Width != 128 || p.uniforms.ImageSizes[7] != [2]uint32{256, 256} {
		t.Errorf("uniforms not initialised: %+v", p.uniforms)
	}
}

func TestPassesDrawLoadsAfterFirstFrame(t *testing.T) {
	p, cleanup := newTestPasses(t)
	defer cleanup()

	if p.frames.cleared || p.scaleWritten {
		t.Fatal("fresh passes should not be marked as drawn")
	}
	if err := p.UploadRecords(nil); err != nil {
		t.Fatalf("UploadRecords: %v", err)
	}
	var palette [PaletteSize]uint32
	palette[1] = 0xff0000
	if err := p.Draw(0, palette); err != nil {
		t.Fatalf("first Draw: %v", err)
	}
	if !p.frames.cleared || !p.scaleWritten {
		t.Error("Draw should mark the frame and scale textures written")
	}
	if p.uniforms.Palette[1] != 0xff0000 {
		t.Errorf("palette not stored: %#x", p.uniforms.Palette[1])
	}
	if err := p.Draw(0, palette); err != nil {
		t.Fatalf("second Draw: %v", err)
	}
}

func TestPassesUploadImage(t *testing.T) {
	p, cleanup := newTestPasses(t)
	defer cleanup()

	if err := p.UploadImage(0, make([]byte, 256*256)); err != nil {
		t.Errorf("UploadImage: %v", err)
	}
	if err := p.UploadImage(ImageCount, make([]byte, 256*256)); err == nil {
		t.Error("expected error for image index out of range")
	}
	if err := p.UploadImage(0, make([]byte, 10)); err == nil {
		t.Error("expected error for short pixel data")
	}
}

func TestPassesPresent(t *testing.T) {
	p, cleanup := newTestPasses(t)
	defer cleanup()

	tex, view, err := createTexture2D(p.device, "test_target", 320, 240,
		gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		t.Fatalf("createTexture2D: %v", err)
	}
	defer func() {
		p.device.DestroyTextureView(view)
		p.device.DestroyTexture(tex)
	}()

	if err := p.Draw(0, [PaletteSize]uint32{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	vp := Viewport{X: 32, Y: 0, Width: 256, Height: 240}
	if err := p.Present(view, gputypes.TextureFormatRGBA8Unorm, vp, 0x101010); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if p.scale.presentFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("present pipeline not rebuilt for target format, got %v", p.scale.presentFormat)
	}
	// An empty viewport only clears.
	if err := p.Present(view, gputypes.TextureFormatRGBA8Unorm, Viewport{}, 0); err != nil {
		t.Fatalf("Present(empty viewport): %v", err)
	}
}

func TestPassesDestroyIdempotent(t *testing.T) {
	p, cleanup := newTestPasses(t)
	defer cleanup()

	p.Destroy()
	if p.images != nil || p.frames != nil || p.draw != nil || p.scale != nil {
		t.Error("Destroy left resources behind")
	}
	p.Destroy()
}

func TestClearColor(t *testing.T) {
	c := clearColor(0xff8000)
	if c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("clearColor(0xff8000) = %+v", c)
	}
	if g := c.G; g < 0.50 || g > 0.51 {
		t.Errorf("green = %v, want about 0.502", g)
	}
	if c := clearColor(0); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 1 {
		t.Errorf("clearColor(0) = %+v, want opaque black", c)
	}
}
