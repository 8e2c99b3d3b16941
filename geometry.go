// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is a 2D clip-space position. Its memory layout is two tightly
// packed float32 values and matches VertexLayout.
type Vertex struct {
	Position [2]float32
}

// VertexSize is the byte stride of one Vertex in the vertex buffer.
const VertexSize = 8

// triangle is the only geometry ever drawn.
var triangle = [3]Vertex{
	{Position: [2]float32{0.0, 0.6}},
	{Position: [2]float32{-0.6, -0.6}},
	{Position: [2]float32{0.6, -0.6}},
}

// TriangleVertices returns a copy of the fixed triangle, top vertex first,
// counter-clockwise.
func TriangleVertices() []Vertex {
	v := triangle
	return v[:]
}

// VertexLayout describes the single vertex buffer the pipeline consumes:
// one Float32x2 position at shader location 0, advanced per vertex.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// VertexBytes packs vertices little-endian for upload.
func VertexBytes(vs []Vertex) []byte {
	buf := make([]byte, len(vs)*VertexSize)
	for i, v := range vs {
		off := i * VertexSize
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(v.Position[1]))
	}
	return buf
}
