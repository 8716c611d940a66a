//go:build !nogpu

package gpu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/naga"
	"github.com/gogpu/pxl/internal/cmdbuf"
)

func compileWGSL(t *testing.T, name, src string) {
	t.Helper()
	if src == "" {
		t.Fatalf("%s shader source is empty", name)
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		errStr := err.Error()
		if contains(errStr, "not yet implemented") || contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		if contains(errStr, "lowering error") {
			t.Skipf("Skipping: naga lowering limitation: %v", err)
		}
		t.Fatalf("failed to compile %s shader: %v", name, err)
	}
	if len(spirvBytes) < 4 {
		t.Fatal("SPIR-V too short")
	}
	magic := uint32(spirvBytes[0]) |
		uint32(spirvBytes[1])<<8 |
		uint32(spirvBytes[2])<<16 |
		uint32(spirvBytes[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: got 0x%08X, want 0x07230203", magic)
	}
}

func TestDrawShaderCompiles(t *testing.T) {
	compileWGSL(t, "draw", DrawShaderSource())
}

func TestScaleShaderCompiles(t *testing.T) {
	compileWGSL(t, "scale", ScaleShaderSource())
}

func TestShaderEntryPoints(t *testing.T) {
	for name, src := range map[string]string{"draw": drawShaderSource, "scale": scaleShaderSource} {
		for _, entry := range []string{"fn vs_main", "fn fs_main"} {
			if !contains(src, entry) {
				t.Errorf("%s shader missing %q", name, entry)
			}
		}
	}
}

// The shape ids in draw.wgsl must match cmdbuf.ShapeType.
func TestDrawShaderShapeIDs(t *testing.T) {
	want := map[string]cmdbuf.ShapeType{
		"SHAPE_PIXEL":          cmdbuf.ShapePixel,
		"SHAPE_LINE":           cmdbuf.ShapeLine,
		"SHAPE_RECT":           cmdbuf.ShapeRect,
		"SHAPE_RECT_OUTLINE":   cmdbuf.ShapeRectOutline,
		"SHAPE_CIRCLE":         cmdbuf.ShapeCircle,
		"SHAPE_CIRCLE_OUTLINE": cmdbuf.ShapeCircleOutline,
		"SHAPE_BLIT":           cmdbuf.ShapeBlit,
		"SHAPE_GLYPH":          cmdbuf.ShapeGlyph,
	}
	for name, shape := range want {
		decl := fmt.Sprintf("const %s: i32 = %d;", name, shape)
		if !contains(drawShaderSource, decl) {
			t.Errorf("draw shader missing %q", decl)
		}
	}
}

// Blits skip texels equal to the record's key unless the key is the
// no-key sentinel.
func TestDrawShaderColorKey(t *testing.T) {
	decl := fmt.Sprintf("const NO_COLOR_KEY: i32 = %d;", cmdbuf.NoColorKey)
	if !contains(drawShaderSource, decl) {
		t.Errorf("draw shader missing %q", decl)
	}
	if !contains(drawShaderSource, "colkey != NO_COLOR_KEY && idx == colkey") {
		t.Error("blit does not discard keyed texels")
	}

	// Out-of-image texels miss before the key is compared, and the key is
	// compared against the raw index, before palette remap.
	body := functionBody(t, drawShaderSource, "blit_color")
	bounds := strings.Index(body, "in_texture(img, t)")
	key := strings.Index(body, "idx == colkey")
	if bounds < 0 || key < 0 || bounds > key {
		t.Errorf("blit_color bounds check must precede the key test:\n%s", body)
	}
	if strings.Contains(body, "u.pal") || strings.Contains(body, "remap") {
		t.Errorf("blit_color must key on the unmapped index:\n%s", body)
	}
}

// Both image paths of the draw shader must select the same image for any
// index, so the size check and the texel fetch cannot disagree.
func TestDrawShaderImageIndexMasked(t *testing.T) {
	if !contains(functionBody(t, drawShaderSource, "in_texture"), "texture_size[img & 7]") {
		t.Error("in_texture does not mask the image index")
	}
	if !contains(functionBody(t, drawShaderSource, "fetch_index"), "switch img & 7") {
		t.Error("fetch_index does not mask the image index")
	}
}

// functionBody returns the WGSL source of fn name up to the next top-level fn.
func functionBody(t *testing.T, src, name string) string {
	t.Helper()
	start := strings.Index(src, "fn "+name+"(")
	if start < 0 {
		t.Fatalf("shader has no function %s", name)
	}
	body := src[start:]
	if end := strings.Index(body[1:], "\nfn "); end >= 0 {
		body = body[:end+1]
	}
	return body
}
