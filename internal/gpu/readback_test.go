//go:build !nogpu

package gpu

import (
	"testing"
	"time"

	"github.com/gogpu/gputypes"
)

func TestReadTextureSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	// 70 pixels is 280 bytes per row, which pads to 512.
	const w, h = 70, 3
	tex, view, err := createTexture2D(device, "test_readback", w, h, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
	if err != nil {
		t.Fatalf("createTexture2D: %v", err)
	}
	defer func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	}()

	data, err := ReadTexture(device, queue, tex, w, h, time.Second)
	if err != nil {
		t.Fatalf("ReadTexture: %v", err)
	}
	if len(data) != w*h*4 {
		t.Errorf("len = %d, want %d", len(data), w*h*4)
	}
}
