// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"slices"

	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// Device is a HAL device. It implements sindri.Device and
// gpucontext.Device.
type Device struct {
	hal   hal.Device
	queue *Queue
	label string

	// surfaces are configured against this device and are unconfigured
	// before it is destroyed.
	surfaces []*Surface
}

func newDevice(dev hal.Device, q hal.Queue, label string) *Device {
	d := &Device{hal: dev, label: label}
	d.queue = &Queue{hal: q, device: d}
	return d
}

// Destroy unconfigures the surfaces that use the device, waits for
// outstanding work and releases the device.
func (d *Device) Destroy() {
	for _, s := range slices.Clone(d.surfaces) {
		s.unconfigure(d)
	}
	d.surfaces = nil
	if err := d.hal.WaitIdle(); err != nil {
		sindri.Logger().Warn("wgpu: wait idle before destroy", "device", d.label, "err", err)
	}
	d.hal.Destroy()
}

// Pipeline is a render pipeline and the objects it was built from.
type Pipeline struct {
	device  *Device
	modules []hal.ShaderModule
	layout  hal.PipelineLayout
	hal     hal.RenderPipeline
}

// Destroy releases the pipeline, its layout and shader modules in reverse
// creation order.
func (p *Pipeline) Destroy() {
	dev := p.device.hal
	if p.hal != nil {
		dev.DestroyRenderPipeline(p.hal)
		p.hal = nil
	}
	if p.layout != nil {
		dev.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	for i := len(p.modules) - 1; i >= 0; i-- {
		dev.DestroyShaderModule(p.modules[i])
	}
	p.modules = nil
}

// CreateRenderPipeline creates the shader module(s), an empty pipeline
// layout and the render pipeline. Stages sharing SPIR-V share a module.
func (d *Device) CreateRenderPipeline(desc *sindri.RenderPipelineDescriptor) (sindri.RenderPipeline, error) {
	p := &Pipeline{device: d}

	vs, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.ShaderLabel,
		Source: hal.ShaderSource{SPIRV: desc.Vertex.SPIRV},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", translate(err))
	}
	p.modules = append(p.modules, vs)

	fs := vs
	if !slices.Equal(desc.Vertex.SPIRV, desc.Fragment.SPIRV) {
		fs, err = d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  desc.ShaderLabel + "_fragment",
			Source: hal.ShaderSource{SPIRV: desc.Fragment.SPIRV},
		})
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("create fragment shader module: %w", translate(err))
		}
		p.modules = append(p.modules, fs)
	}

	p.layout, err = d.hal.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.LayoutLabel,
		BindGroupLayouts: []hal.BindGroupLayout{},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create pipeline layout: %w", translate(err))
	}

	p.hal, err = d.hal.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     vs,
			EntryPoint: desc.Vertex.EntryPoint,
			Buffers:    desc.Buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     fs,
			EntryPoint: desc.Fragment.EntryPoint,
			Targets:    desc.Targets,
		},
		Primitive:   desc.Primitive,
		Multisample: desc.Multisample,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create render pipeline: %w", translate(err))
	}
	return p, nil
}

// Buffer is a HAL buffer. It implements sindri.Buffer.
type Buffer struct {
	device *Device
	hal    hal.Buffer
	size   uint64
}

func (b *Buffer) Size() uint64 { return b.size }

func (b *Buffer) Destroy() {
	if b.hal != nil {
		b.device.hal.DestroyBuffer(b.hal)
		b.hal = nil
	}
}

// CreateBufferInit creates a buffer and uploads desc.Contents through the
// queue. Usage must include BufferUsageCopyDst.
func (d *Device) CreateBufferInit(desc *sindri.BufferInitDescriptor) (sindri.Buffer, error) {
	size := uint64(len(desc.Contents))
	buf, err := d.hal.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  size,
		Usage: desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", desc.Label, translate(err))
	}
	if err := d.queue.hal.WriteBuffer(buf, 0, desc.Contents); err != nil {
		d.hal.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", desc.Label, translate(err))
	}
	return &Buffer{device: d, hal: buf, size: size}, nil
}

// CreateCommandEncoder creates an encoder that is already recording.
func (d *Device) CreateCommandEncoder(label string) (sindri.CommandEncoder, error) {
	enc, err := d.hal.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", translate(err))
	}
	if err := enc.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", translate(err))
	}
	return &commandEncoder{device: d, hal: enc}, nil
}

// Queue is a HAL queue. It implements sindri.Queue and gpucontext.Queue.
type Queue struct {
	hal    hal.Queue
	device *Device
}

// Submit executes cmd and blocks until the queue has completed it, then
// frees the command buffer.
func (q *Queue) Submit(cmd sindri.CommandBuffer) error {
	cb, ok := cmd.(hal.CommandBuffer)
	if !ok {
		return errForeignHandle
	}
	dev := q.device.hal
	defer dev.FreeCommandBuffer(cb)

	index, err := q.hal.Submit([]hal.CommandBuffer{cb})
	if err != nil {
		return fmt.Errorf("submit: %w", translate(err))
	}
	if q.hal.PollCompleted() >= index {
		return nil
	}
	if err := dev.WaitIdle(); err != nil {
		return fmt.Errorf("wait for submission %d: %w", index, translate(err))
	}
	return nil
}

var (
	_ sindri.Device = (*Device)(nil)
	_ sindri.Queue  = (*Queue)(nil)
)
