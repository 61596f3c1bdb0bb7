// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gogpu/fan"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/fan.wgsl
var fanShaderSource string

//go:embed shaders/fill.wgsl
var fillShaderSource string

// Shader entry points every source must define.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// pipeline holds the shader, layouts and render pipeline.
// uniformLayout is nil when the aspect uniform is disabled.
type pipeline struct {
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	layout        hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// compileShader validates WGSL with naga before handing it to the device,
// so errors carry source diagnostics instead of a backend failure.
func compileShader(device hal.Device, source, label string) (hal.ShaderModule, error) {
	for _, entry := range []string{vertexEntryPoint, fragmentEntryPoint} {
		if !strings.Contains(source, entry) {
			return nil, fmt.Errorf("%w: missing entry point %s", ErrShaderCompile, entry)
		}
	}
	if _, err := naga.Compile(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	return shader, nil
}

// createPipeline compiles the shader and builds the render pipeline:
// triangle list, back faces culled, counter-clockwise front faces, one color
// target in the surface format.
func createPipeline(device hal.Device, o *options) (*pipeline, error) {
	p := &pipeline{}
	shader, err := compileShader(device, o.shader(), o.label)
	if err != nil {
		return nil, err
	}
	p.shader = shader

	var bindLayouts []hal.BindGroupLayout
	if o.aspectUniform {
		uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: o.label + "_uniform_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				},
			},
		})
		if err != nil {
			p.destroy(device)
			return nil, fmt.Errorf("%w: uniform layout: %w", ErrPipeline, err)
		}
		p.uniformLayout = uniformLayout
		bindLayouts = append(bindLayouts, uniformLayout)
	}

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            o.label + "_pipe_layout",
		BindGroupLayouts: bindLayouts,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("%w: pipeline layout: %w", ErrPipeline, err)
	}
	p.layout = layout

	rp, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  o.label + "_pipeline",
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    o.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: o.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	p.pipeline = rp
	return p, nil
}

// destroy releases pipeline resources in reverse creation order.
func (p *pipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// vertexLayout describes fan.Vertex: one vec2<f32> at location 0.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: fan.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}
