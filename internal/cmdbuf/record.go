// Package cmdbuf encodes the draw calls of one logical frame into fixed-width
// records. Each record becomes one instance of the draw shader, so the order
// of records is the order in which shapes are painted.
package cmdbuf

import (
	"encoding/binary"
	"fmt"
)

// ShapeType selects how the draw shader interprets a record.
type ShapeType int32

// Shape types. The numeric values are shared with shaders/draw.wgsl.
const (
	ShapePixel ShapeType = iota
	ShapeLine
	ShapeRect
	ShapeRectOutline
	ShapeCircle
	ShapeCircleOutline
	ShapeBlit
	ShapeGlyph
)

var shapeNames = [...]string{
	ShapePixel:         "pixel",
	ShapeLine:          "line",
	ShapeRect:          "rect",
	ShapeRectOutline:   "rect_outline",
	ShapeCircle:        "circle",
	ShapeCircleOutline: "circle_outline",
	ShapeBlit:          "blit",
	ShapeGlyph:         "glyph",
}

// String returns the shape name.
func (s ShapeType) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("ShapeType(%d)", int32(s))
}

// NoColorKey in a blit record's Color field disables colour keying.
const NoColorKey = -1

// RecordStride is the byte stride of one encoded record in the instance
// buffer. Layout per record (little-endian):
//
//	shape, color, image (vec3<i32>) = 12 bytes (location 0)
//	x1, y1, x2, y2      (vec4<i32>) = 16 bytes (location 1)
//	w, h                (vec2<i32>) =  8 bytes (location 2)
//	clip x, y, w, h     (vec4<i32>) = 16 bytes (location 3)
//	palette words       (vec4<u32>) = 16 bytes (location 4)
//
// Total = 68 bytes per record.
const RecordStride = 68

// Record is one draw call. Fields a shape does not use stay zero.
//
// For ShapeBlit and ShapeGlyph, X2/Y2 hold the source offset inside the
// image and Color holds the colour key (blit) or the ink colour (glyph).
// For circles, W holds the radius.
type Record struct {
	Shape ShapeType
	Color int32
	Image int32

	X1, Y1, X2, Y2 int32
	W, H           int32

	// State is the clip/palette block in effect when the record was encoded.
	State State
}

// put writes the record into buf, which must hold at least RecordStride bytes.
func (r *Record) put(buf []byte) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], uint32(r.Shape))
	le.PutUint32(buf[4:8], uint32(r.Color))
	le.PutUint32(buf[8:12], uint32(r.Image))
	le.PutUint32(buf[12:16], uint32(r.X1))
	le.PutUint32(buf[16:20], uint32(r.Y1))
	le.PutUint32(buf[20:24], uint32(r.X2))
	le.PutUint32(buf[24:28], uint32(r.Y2))
	le.PutUint32(buf[28:32], uint32(r.W))
	le.PutUint32(buf[32:36], uint32(r.H))
	le.PutUint32(buf[36:40], uint32(r.State.ClipX))
	le.PutUint32(buf[40:44], uint32(r.State.ClipY))
	le.PutUint32(buf[44:48], uint32(r.State.ClipW))
	le.PutUint32(buf[48:52], uint32(r.State.ClipH))
	for i, w := range r.State.Pal {
		off := 52 + i*4
		le.PutUint32(buf[off:off+4], uint32(w))
	}
}
