// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"context"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// This file declares the narrow slice of WebGPU that a Context drives.
// backend/wgpu implements it on top of the gogpu/wgpu HAL; tests implement
// it with fakes.

// Window is the part of an application window a Context depends on.
// The window must stay alive until the Context using it is closed.
type Window interface {
	// NativeHandle returns the platform display connection (or module
	// instance) and window handle used to create a surface.
	NativeHandle() (display, window uintptr)

	// FramebufferSize returns the drawable size in physical pixels.
	FramebufferSize() (width, height int)
}

// Instance is the process-wide entry point of a graphics backend.
type Instance interface {
	// CreateSurface binds a presentable surface to win.
	CreateSurface(win Window) (Surface, error)

	// RequestAdapter blocks until an adapter matching req is found.
	RequestAdapter(ctx context.Context, req *AdapterRequest) (Adapter, error)

	Destroy()
}

// AdapterRequest describes the adapter a Context wants.
type AdapterRequest struct {
	PowerPreference gputypes.PowerPreference

	// ForceFallback restricts selection to software adapters.
	ForceFallback bool

	// CompatibleSurface must be presentable by the chosen adapter.
	CompatibleSurface Surface
}

// AdapterInfo identifies the adapter in diagnostics.
type AdapterInfo struct {
	Name       string
	DeviceType gputypes.DeviceType
	Backend    gputypes.Backend
	Driver     string
}

// String returns the adapter line printed at startup.
func (i AdapterInfo) String() string {
	return fmt.Sprintf("%s (%v) backend=%v", i.Name, i.DeviceType, i.Backend)
}

// Summary reduces i to the adapter record shared with host libraries.
func (i AdapterInfo) Summary() gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch i.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: i.Name, Type: t}
}

// Adapter is one physical or virtual GPU.
type Adapter interface {
	gpucontext.Adapter

	Info() AdapterInfo

	// SurfaceCapabilities reports what s supports on this adapter.
	SurfaceCapabilities(s Surface) (*SurfaceCapabilities, error)

	// RequestDevice opens a logical device and its queue.
	RequestDevice(ctx context.Context, desc *DeviceDescriptor) (Device, Queue, error)

	Destroy()
}

// DeviceDescriptor configures RequestDevice.
type DeviceDescriptor struct {
	Label            string
	RequiredFeatures gputypes.Features
	RequiredLimits   gputypes.Limits
}

// PresentMode controls when a presented texture becomes visible.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank. Supported everywhere.
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "Fifo"
	case PresentModeFifoRelaxed:
		return "FifoRelaxed"
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// AlphaMode controls how the compositor treats surface alpha.
type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModePremultiplied
	AlphaModePostmultiplied
	AlphaModeInherit
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaModeOpaque:
		return "Opaque"
	case AlphaModePremultiplied:
		return "Premultiplied"
	case AlphaModePostmultiplied:
		return "Postmultiplied"
	case AlphaModeInherit:
		return "Inherit"
	default:
		return fmt.Sprintf("AlphaMode(%d)", uint8(m))
	}
}

// SurfaceCapabilities lists what a surface supports on an adapter, in the
// adapter's order of preference.
type SurfaceCapabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// SurfaceConfiguration is applied to a surface with Configure.
type SurfaceConfiguration struct {
	Usage       gputypes.TextureUsage
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   AlphaMode

	// DesiredMaximumFrameLatency bounds how many frames may be queued
	// ahead of the display.
	DesiredMaximumFrameLatency uint32
}

// Surface is a presentable target bound to a window.
type Surface interface {
	Configure(dev Device, cfg *SurfaceConfiguration) error

	// Acquire returns the next texture to render into. Failures wrap
	// ErrSurfaceLost, ErrSurfaceOutdated, ErrOutOfMemory or ErrTimeout
	// when the cause is one of those.
	Acquire() (SurfaceTexture, error)

	Destroy()
}

// SurfaceTexture is an acquired surface texture. Exactly one of Present
// or Discard must be called; the texture is unusable afterwards.
type SurfaceTexture interface {
	View() TextureView

	// Suboptimal reports that the texture can be presented but the
	// surface should be reconfigured.
	Suboptimal() bool

	Present() error
	Discard()
}

// TextureView and CommandBuffer are opaque backend handles.
type (
	TextureView   any
	CommandBuffer any
)

// RenderPipeline is a compiled render pipeline.
type RenderPipeline interface {
	Destroy()
}

// Buffer is a GPU buffer.
type Buffer interface {
	Size() uint64
	Destroy()
}

// Device creates GPU objects. It satisfies gpucontext.Device so a
// Context can hand it to host libraries.
type Device interface {
	gpucontext.Device

	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)

	// CreateBufferInit creates a buffer holding desc.Contents.
	CreateBufferInit(desc *BufferInitDescriptor) (Buffer, error)

	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Destroy waits for outstanding work and releases the device.
	Destroy()
}

// Queue submits recorded work.
type Queue interface {
	gpucontext.Queue

	// Submit executes cmd. It blocks until the device has consumed it.
	Submit(cmd CommandBuffer) error
}

// ShaderStage names a compiled module and its entry point.
type ShaderStage struct {
	// SPIRV is the compiled module shared by both stages.
	SPIRV      []uint32
	EntryPoint string
}

// RenderPipelineDescriptor is the backend-neutral pipeline description.
type RenderPipelineDescriptor struct {
	Label       string
	ShaderLabel string
	LayoutLabel string

	Vertex      ShaderStage
	Fragment    ShaderStage
	Buffers     []gputypes.VertexBufferLayout
	Targets     []gputypes.ColorTargetState
	Primitive   gputypes.PrimitiveState
	Multisample gputypes.MultisampleState
}

// BufferInitDescriptor configures CreateBufferInit.
type BufferInitDescriptor struct {
	Label    string
	Contents []byte
	Usage    gputypes.BufferUsage
}

// CommandEncoder records a command sequence.
type CommandEncoder interface {
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error)

	// Finish closes recording. All render passes must have ended.
	Finish() (CommandBuffer, error)

	// Discard abandons recording.
	Discard()
}

// ColorAttachment is one render pass color target.
type ColorAttachment struct {
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// RenderPassDescriptor configures BeginRenderPass. There is no depth,
// stencil, occlusion or timestamp state.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []ColorAttachment
}

// RenderPass records draw commands.
type RenderPass interface {
	SetPipeline(p RenderPipeline)

	// SetVertexBuffer binds the whole of b to slot.
	SetVertexBuffer(slot uint32, b Buffer)

	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}
