//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// scaleVertexStride is the byte stride per vertex in the scale pipeline.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes (location 0)
//	tex_coord (vec2<f32>) = 8 bytes (location 1)
//
// Total = 16 bytes per vertex.
const scaleVertexStride = 16

// quadVertexCount is the number of strip vertices in a full-target quad.
const quadVertexCount = 4

// quadGeometry is a full-target triangle strip: x, y, u, v per vertex.
type quadGeometry [quadVertexCount][4]float32

// captureQuad maps texel row 0 to the top of the target, copying the frame
// texture into the scale texture unchanged.
var captureQuad = quadGeometry{
	{-1, 1, 0, 0},
	{-1, -1, 0, 1},
	{1, 1, 1, 0},
	{1, -1, 1, 1},
}

// presentQuad is captureQuad with v flipped. The frame texture is stored
// bottom-up, so the flip puts logical row 0 at the top of the display.
var presentQuad = quadGeometry{
	{-1, 1, 0, 1},
	{-1, -1, 0, 0},
	{1, 1, 1, 1},
	{1, -1, 1, 0},
}

func (q *quadGeometry) bytes() []byte {
	buf := make([]byte, quadVertexCount*scaleVertexStride)
	for i, v := range q {
		for j, f := range v {
			binary.LittleEndian.PutUint32(buf[i*scaleVertexStride+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// ScalePipeline draws a texture over a whole render target with
// nearest-neighbour sampling. It runs twice per rendered frame: capture
// (frame texture into scale texture) and present (scale texture onto the
// display view, inside the viewport set by the caller).
type ScalePipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler

	capturePipeline hal.RenderPipeline
	presentPipeline hal.RenderPipeline
	presentFormat   gputypes.TextureFormat

	captureQuadBuf hal.Buffer
	presentQuadBuf hal.Buffer

	captureBindGroup hal.BindGroup
	presentBindGroup hal.BindGroup
}

// NewScalePipeline compiles scale.wgsl and binds the frame texture as the
// capture source and the scale texture as the present source.
func NewScalePipeline(device hal.Device, queue hal.Queue, frames *FrameTextures, presentFormat gputypes.TextureFormat) (*ScalePipeline, error) {
	p := &ScalePipeline{device: device, queue: queue}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.createResources(frames); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.ensurePresentPipeline(presentFormat); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *ScalePipeline) createPipeline() error {
	if scaleShaderSource == "" {
		return fmt.Errorf("scale shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pxl_scale_shader",
		Source: hal.ShaderSource{WGSL: scaleShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile scale shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: source texture (texture_2d, fragment)
	//   Binding 1: sampler (fragment)
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "pxl_scale_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create scale bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "pxl_scale_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create scale pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "pxl_scale_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create scale sampler: %w", err)
	}
	p.sampler = sampler

	capture, err := p.createRenderPipeline("pxl_scale_capture_pipeline", frameFormat)
	if err != nil {
		return err
	}
	p.capturePipeline = capture
	return nil
}

func (p *ScalePipeline) createRenderPipeline(label string, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    scaleVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return pipeline, nil
}

// ensurePresentPipeline makes sure the present pipeline targets format,
// rebuilding it when the display format changed.
func (p *ScalePipeline) ensurePresentPipeline(format gputypes.TextureFormat) error {
	if p.presentPipeline != nil && p.presentFormat == format {
		return nil
	}
	pipeline, err := p.createRenderPipeline("pxl_scale_present_pipeline", format)
	if err != nil {
		return err
	}
	if p.presentPipeline != nil {
		p.device.DestroyRenderPipeline(p.presentPipeline)
	}
	p.presentPipeline = pipeline
	p.presentFormat = format
	slogger().Debug("pxl: present pipeline created", "format", format)
	return nil
}

func (p *ScalePipeline) createResources(frames *FrameTextures) error {
	var err error
	if p.captureQuadBuf, err = p.createQuadBuffer("pxl_capture_quad", &captureQuad); err != nil {
		return err
	}
	if p.presentQuadBuf, err = p.createQuadBuffer("pxl_present_quad", &presentQuad); err != nil {
		return err
	}
	if p.captureBindGroup, err = p.createBindGroup("pxl_capture_bind_group", frames.frameView); err != nil {
		return err
	}
	if p.presentBindGroup, err = p.createBindGroup("pxl_present_bind_group", frames.scaleView); err != nil {
		return err
	}
	return nil
}

func (p *ScalePipeline) createQuadBuffer(label string, q *quadGeometry) (hal.Buffer, error) {
	data := q.bytes()
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	if err := p.queue.WriteBuffer(buf, 0, data); err != nil {
		p.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s buffer: %w", label, err)
	}
	return buf, nil
}

func (p *ScalePipeline) createBindGroup(label string, view hal.TextureView) (hal.BindGroup, error) {
	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return bg, nil
}

// RecordCapture draws the frame texture over the whole scale texture.
func (p *ScalePipeline) RecordCapture(rp hal.RenderPassEncoder) {
	rp.SetPipeline(p.capturePipeline)
	rp.SetBindGroup(0, p.captureBindGroup, nil)
	rp.SetVertexBuffer(0, p.captureQuadBuf, 0)
	rp.Draw(quadVertexCount, 1, 0, 0)
}

// RecordPresent draws the scale texture into the current viewport of rp.
func (p *ScalePipeline) RecordPresent(rp hal.RenderPassEncoder) {
	rp.SetPipeline(p.presentPipeline)
	rp.SetBindGroup(0, p.presentBindGroup, nil)
	rp.SetVertexBuffer(0, p.presentQuadBuf, 0)
	rp.Draw(quadVertexCount, 1, 0, 0)
}

// Destroy releases all GPU resources in reverse creation order. Safe to call
// multiple times.
func (p *ScalePipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.presentPipeline != nil {
		p.device.DestroyRenderPipeline(p.presentPipeline)
		p.presentPipeline = nil
	}
	if p.presentBindGroup != nil {
		p.device.DestroyBindGroup(p.presentBindGroup)
		p.presentBindGroup = nil
	}
	if p.captureBindGroup != nil {
		p.device.DestroyBindGroup(p.captureBindGroup)
		p.captureBindGroup = nil
	}
	if p.presentQuadBuf != nil {
		p.device.DestroyBuffer(p.presentQuadBuf)
		p.presentQuadBuf = nil
	}
	if p.captureQuadBuf != nil {
		p.device.DestroyBuffer(p.captureQuadBuf)
		p.captureQuadBuf = nil
	}
	if p.capturePipeline != nil {
		p.device.DestroyRenderPipeline(p.capturePipeline)
		p.capturePipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
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

// scaleVertexLayout returns the vertex buffer layout for the scale pipeline.
func scaleVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: scaleVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
			},
		},
	}
}
