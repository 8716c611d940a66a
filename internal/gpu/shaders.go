//go:build !nogpu

package gpu

import (
	_ "embed"
)

// Embedded WGSL shader sources.

//go:embed shaders/draw.wgsl
var drawShaderSource string

//go:embed shaders/scale.wgsl
var scaleShaderSource string

// DrawShaderSource returns the WGSL source of the draw pass.
func DrawShaderSource() string { return drawShaderSource }

// ScaleShaderSource returns the WGSL source of the scale pass.
func ScaleShaderSource() string { return scaleShaderSource }
