// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

//go:embed shaders/triangle.wgsl
var triangleWGSL string

// Shader entry points in shaders/triangle.wgsl.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// TriangleShaderSource returns the WGSL source of the triangle program.
func TriangleShaderSource() string {
	return triangleWGSL
}

// compileWGSL compiles WGSL to SPIR-V words. SPIR-V is a stream of
// little-endian 32-bit words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// blendReplace overwrites the destination with every fragment.
func blendReplace() *gputypes.BlendState {
	replace := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
	return &gputypes.BlendState{Color: replace, Alpha: replace}
}

// trianglePipelineDescriptor describes the triangle pipeline for a surface
// of the given format. The color target format must equal the surface
// format; the backend rejects a mismatch.
func trianglePipelineDescriptor(spirv []uint32, format gputypes.TextureFormat, o *contextOptions) *RenderPipelineDescriptor {
	return &RenderPipelineDescriptor{
		Label:       o.label("triangle_pipeline"),
		ShaderLabel: o.label("triangle_shader"),
		LayoutLabel: o.label("pipeline_layout"),
		Vertex: ShaderStage{
			SPIRV:      spirv,
			EntryPoint: VertexEntryPoint,
		},
		Fragment: ShaderStage{
			SPIRV:      spirv,
			EntryPoint: FragmentEntryPoint,
		},
		Buffers: VertexLayout(),
		Targets: []gputypes.ColorTargetState{
			{
				Format:    format,
				Blend:     blendReplace(),
				WriteMask: gputypes.ColorWriteMaskAll,
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
	}
}

// buildPipeline compiles the triangle shader and creates its pipeline.
func buildPipeline(dev Device, format gputypes.TextureFormat, o *contextOptions) (RenderPipeline, error) {
	spirv, err := compileWGSL(triangleWGSL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipelineCreation, err)
	}
	p, err := dev.CreateRenderPipeline(trianglePipelineDescriptor(spirv, format, o))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipelineCreation, err)
	}
	Logger().Debug("sindri: pipeline created", "format", format, "spirv_words", len(spirv))
	return p, nil
}

// uploadTriangle creates the vertex buffer holding the fixed triangle.
func uploadTriangle(dev Device, o *contextOptions) (Buffer, uint32, error) {
	vs := TriangleVertices()
	buf, err := dev.CreateBufferInit(&BufferInitDescriptor{
		Label:    o.label("triangle_vbo"),
		Contents: VertexBytes(vs),
		Usage:    gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: vertex buffer: %w", ErrPipelineCreation, err)
	}
	return buf, uint32(len(vs)), nil
}
