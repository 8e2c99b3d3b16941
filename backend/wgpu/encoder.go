// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// commandEncoder is a recording HAL encoder.
type commandEncoder struct {
	device *Device
	hal    hal.CommandEncoder
}

func (e *commandEncoder) BeginRenderPass(desc *sindri.RenderPassDescriptor) (sindri.RenderPass, error) {
	attachments := make([]hal.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		view, ok := a.View.(hal.TextureView)
		if !ok {
			return nil, fmt.Errorf("color attachment %d: %w", i, errForeignHandle)
		}
		attachments[i] = hal.RenderPassColorAttachment{
			View:       view,
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: a.ClearValue,
		}
	}
	rp := e.hal.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: attachments,
	})
	return &renderPass{hal: rp}, nil
}

func (e *commandEncoder) Finish() (sindri.CommandBuffer, error) {
	cb, err := e.hal.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", translate(err))
	}
	return cb, nil
}

func (e *commandEncoder) Discard() {
	e.hal.DiscardEncoding()
}

// renderPass forwards to a HAL pass encoder. Handles from another
// backend are reported by End.
type renderPass struct {
	hal hal.RenderPassEncoder
	err error
}

func (p *renderPass) SetPipeline(rp sindri.RenderPipeline) {
	pl, ok := rp.(*Pipeline)
	if !ok {
		p.err = fmt.Errorf("pipeline: %w", errForeignHandle)
		return
	}
	p.hal.SetPipeline(pl.hal)
}

func (p *renderPass) SetVertexBuffer(slot uint32, b sindri.Buffer) {
	buf, ok := b.(*Buffer)
	if !ok {
		p.err = fmt.Errorf("vertex buffer: %w", errForeignHandle)
		return
	}
	p.hal.SetVertexBuffer(slot, buf.hal, 0)
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.err != nil {
		return
	}
	p.hal.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *renderPass) End() error {
	p.hal.End()
	return p.err
}
