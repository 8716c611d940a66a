//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxl/internal/cmdbuf"
	"github.com/gogpu/wgpu/hal"
)

// PaletteSize is the number of RGB slots the draw shader can output.
const PaletteSize = 8

// drawUniformSize is the byte size of the Uniforms struct in draw.wgsl:
//
//	framebuffer_size (vec4<f32>)            =  16 bytes
//	palette          (array<vec4<u32>, 8>)  = 128 bytes
//	texture_size     (array<vec4<f32>, 8>)  = 128 bytes
//
// Total = 272 bytes.
const drawUniformSize = 16 + PaletteSize*16 + ImageCount*16

// instanceBufferSize holds a full command buffer.
const instanceBufferSize = cmdbuf.MaxCommands * cmdbuf.RecordStride

// DrawUniforms is the per-frame uniform data of the draw pass.
type DrawUniforms struct {
	// Width and Height are the framebuffer size in pixels.
	Width, Height uint32

	// Palette holds packed 0xRRGGBB colours.
	Palette [PaletteSize]uint32

	// ImageSizes holds the width and height of each image texture.
	ImageSizes [ImageCount][2]uint32
}

// encode writes the uniforms in draw.wgsl layout. The palette is split into
// r, g, b integer components.
func (u *DrawUniforms) encode(buf []byte) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], math.Float32bits(float32(u.Width)))
	le.PutUint32(buf[4:8], math.Float32bits(float32(u.Height)))
	le.PutUint32(buf[8:12], 0)
	le.PutUint32(buf[12:16], 0)

	off := 16
	for _, c := range u.Palette {
		le.PutUint32(buf[off:], (c>>16)&0xff)
		le.PutUint32(buf[off+4:], (c>>8)&0xff)
		le.PutUint32(buf[off+8:], c&0xff)
		le.PutUint32(buf[off+12:], 0)
		off += 16
	}
	for _, s := range u.ImageSizes {
		le.PutUint32(buf[off:], math.Float32bits(float32(s[0])))
		le.PutUint32(buf[off+4:], math.Float32bits(float32(s[1])))
		le.PutUint32(buf[off+8:], 0)
		le.PutUint32(buf[off+12:], 0)
		off += 16
	}
}

// DrawPipeline renders command records as instanced quads into the frame
// texture. All records of a frame go out in one draw call, so instance order
// is paint order.
type DrawPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	instanceBuf hal.Buffer
	uniformBuf  hal.Buffer
	bindGroup   hal.BindGroup

	uniformStaging [drawUniformSize]byte
}

// NewDrawPipeline compiles draw.wgsl and allocates the instance and uniform
// buffers. The bind group references every texture in images.
func NewDrawPipeline(device hal.Device, queue hal.Queue, images *ImageTextures) (*DrawPipeline, error) {
	p := &DrawPipeline{device: device, queue: queue}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.createResources(images); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *DrawPipeline) createPipeline() error {
	if drawShaderSource == "" {
		return fmt.Errorf("draw shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pxl_draw_shader",
		Source: hal.ShaderSource{WGSL: drawShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile draw shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: Uniforms (uniform buffer, vertex+fragment)
	//   Binding 1..8: image textures (texture_2d, fragment)
	entries := []gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}}
	for i := 0; i < ImageCount; i++ {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(1 + i), //nolint:gosec // i < ImageCount
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		})
	}
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "pxl_draw_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create draw bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "pxl_draw_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create draw pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "pxl_draw_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    recordVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    frameFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create draw pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

func (p *DrawPipeline) createResources(images *ImageTextures) error {
	instanceBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pxl_draw_instances",
		Size:  instanceBufferSize,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create draw instance buffer: %w", err)
	}
	p.instanceBuf = instanceBuf

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pxl_draw_uniforms",
		Size:  drawUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create draw uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: drawUniformSize,
		}},
	}
	for i, view := range images.views {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(1 + i), //nolint:gosec // i < ImageCount
			Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
		})
	}
	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "pxl_draw_bind_group",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create draw bind group: %w", err)
	}
	p.bindGroup = bindGroup
	return nil
}

// UploadRecords copies encoded records into the instance buffer. data must
// hold whole records and at most cmdbuf.MaxCommands of them.
func (p *DrawPipeline) UploadRecords(data []byte) error {
	if len(data)%cmdbuf.RecordStride != 0 || len(data) > instanceBufferSize {
		return fmt.Errorf("upload records: invalid length %d", len(data))
	}
	if len(data) == 0 {
		return nil
	}
	if err := p.queue.WriteBuffer(p.instanceBuf, 0, data); err != nil {
		return fmt.Errorf("upload records: %w", err)
	}
	return nil
}

// WriteUniforms uploads the per-frame uniforms.
func (p *DrawPipeline) WriteUniforms(u *DrawUniforms) error {
	u.encode(p.uniformStaging[:])
	if err := p.queue.WriteBuffer(p.uniformBuf, 0, p.uniformStaging[:]); err != nil {
		return fmt.Errorf("write draw uniforms: %w", err)
	}
	return nil
}

// Record issues the draw call for count records into rp. Six vertices per
// instance form the record's quad.
func (p *DrawPipeline) Record(rp hal.RenderPassEncoder, count uint32) {
	if count == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetVertexBuffer(0, p.instanceBuf, 0)
	rp.Draw(6, count, 0, 0)
}

// Destroy releases all GPU resources in reverse creation order. Safe to call
// multiple times.
func (p *DrawPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.instanceBuf != nil {
		p.device.DestroyBuffer(p.instanceBuf)
		p.instanceBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// recordVertexLayout returns the per-instance layout matching Record in
// draw.wgsl and cmdbuf.RecordStride.
func recordVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: cmdbuf.RecordStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatSint32x3, Offset: 0, ShaderLocation: 0},  // shape, color, image
				{Format: gputypes.VertexFormatSint32x4, Offset: 12, ShaderLocation: 1}, // x1, y1, x2, y2
				{Format: gputypes.VertexFormatSint32x2, Offset: 28, ShaderLocation: 2}, // w, h
				{Format: gputypes.VertexFormatSint32x4, Offset: 36, ShaderLocation: 3}, // clip
				{Format: gputypes.VertexFormatUint32x4, Offset: 52, ShaderLocation: 4}, // palette words
			},
		},
	}
}
