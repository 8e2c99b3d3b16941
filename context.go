// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"context"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// FrameStats counts frame outcomes since the Context was created.
type FrameStats struct {
	Presented        uint64
	SkippedMinimized uint64
	Recovered        uint64
	SkippedError     uint64
}

// Context owns every GPU resource needed to draw the triangle into one
// window: surface, device, queue, pipeline and vertex buffer.
//
// A Context is driven from a single goroutine. It references the window it
// was created for and must be closed before that window is destroyed;
// window.Run enforces this by scoping the Context inside its callback.
type Context struct {
	opts contextOptions
	gpu  *negotiated

	configurator *surfaceConfigurator
	renderer     *frameRenderer

	pipeline     RenderPipeline
	vertexBuffer Buffer

	stats FrameStats

	// fatal latches the first fatal render error. Later Render calls
	// return it without touching the GPU.
	fatal  error
	closed bool
}

// NewContext negotiates an adapter and device for win, configures its
// surface and builds the triangle pipeline. inst must be the process
// backend instance; it is not owned by the Context.
//
// Errors wrap ErrSurfaceCreation, ErrNoAdapter, ErrDeviceCreation or
// ErrPipelineCreation. On error nothing is left allocated.
func NewContext(ctx context.Context, inst Instance, win Window, opts GPUOptions, options ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range options {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	c := &Context{opts: o}

	gpu, err := negotiate(ctx, inst, win, opts, &c.opts)
	if err != nil {
		return nil, err
	}
	c.gpu = gpu

	if err := c.init(win); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Context) init(win Window) error {
	caps, err := c.gpu.adapter.SurfaceCapabilities(c.gpu.surface)
	if err != nil {
		return fmt.Errorf("%w: surface capabilities: %w", ErrSurfaceCreation, err)
	}

	width, height := win.FramebufferSize()
	sc, err := newSurfaceConfigurator(c.gpu.surface, c.gpu.device, caps, width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	c.configurator = sc

	c.pipeline, err = buildPipeline(c.gpu.device, sc.config.Format, &c.opts)
	if err != nil {
		return err
	}

	buf, count, err := uploadTriangle(c.gpu.device, &c.opts)
	if err != nil {
		return err
	}
	c.vertexBuffer = buf

	c.renderer = &frameRenderer{
		device:       c.gpu.device,
		queue:        c.gpu.queue,
		surface:      c.gpu.surface,
		configurator: sc,
		pipeline:     c.pipeline,
		vertexBuffer: buf,
		vertexCount:  count,
		opts:         &c.opts,
	}
	return nil
}

// Resize reconfigures the surface for a new window size in physical
// pixels. A zero width or height marks the window minimized: nothing is
// reconfigured and frames are skipped until a non-zero size arrives.
func (c *Context) Resize(width, height int) error {
	if c.closed {
		return ErrClosed
	}
	return c.configurator.resize(width, height)
}

// Render draws one frame. Lost, outdated and other non-fatal surface
// failures are handled internally and reported as nil. A non-nil error
// means rendering cannot continue (see IsFatal) and the caller should
// exit.
func (c *Context) Render() error {
	_, err := c.RenderFrame()
	return err
}

// RenderFrame is Render reporting what happened to the frame.
func (c *Context) RenderFrame() (FrameOutcome, error) {
	if c.closed {
		return FrameFatal, ErrClosed
	}
	if c.fatal != nil {
		return FrameFatal, c.fatal
	}

	outcome, err := c.renderer.render()
	switch outcome {
	case FramePresented:
		c.stats.Presented++
	case FrameSkippedMinimized:
		c.stats.SkippedMinimized++
	case FrameSkippedRecovered:
		c.stats.Recovered++
	case FrameSkippedError:
		c.stats.SkippedError++
	case FrameFatal:
		c.fatal = err
	}
	return outcome, err
}

// Config returns the current surface configuration.
func (c *Context) Config() SurfaceConfiguration {
	if c.configurator == nil {
		return SurfaceConfiguration{}
	}
	return c.configurator.config
}

// Info identifies the selected adapter.
func (c *Context) Info() AdapterInfo {
	if c.gpu == nil {
		return AdapterInfo{}
	}
	return c.gpu.info
}

// Stats returns frame counters.
func (c *Context) Stats() FrameStats {
	return c.stats
}

// FrameState returns the renderer state. It is FrameStateIdle between calls
// to Render.
func (c *Context) FrameState() FrameState {
	if c.renderer == nil {
		return FrameStateIdle
	}
	return c.renderer.state
}

// Minimized reports whether the last resize had a zero dimension.
func (c *Context) Minimized() bool {
	return c.configurator != nil && c.configurator.minimized
}

// Close releases GPU resources in reverse creation order: vertex buffer,
// pipeline, device, adapter, surface. It is safe to call more than once.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.vertexBuffer != nil {
		c.vertexBuffer.Destroy()
		c.vertexBuffer = nil
	}
	if c.pipeline != nil {
		c.pipeline.Destroy()
		c.pipeline = nil
	}
	if c.gpu != nil {
		c.gpu.release()
	}
	Logger().Debug("sindri: context closed", "frames_presented", c.stats.Presented)
}

// Device returns the logical device. Part of gpucontext.DeviceProvider.
func (c *Context) Device() gpucontext.Device {
	if c.gpu == nil || c.gpu.device == nil {
		return nil
	}
	return c.gpu.device
}

// Queue returns the device queue. Part of gpucontext.DeviceProvider.
func (c *Context) Queue() gpucontext.Queue {
	if c.gpu == nil || c.gpu.queue == nil {
		return nil
	}
	return c.gpu.queue
}

// Adapter returns the selected adapter. Part of gpucontext.DeviceProvider.
func (c *Context) Adapter() gpucontext.Adapter {
	if c.gpu == nil || c.gpu.adapter == nil {
		return nil
	}
	return c.gpu.adapter
}

// SurfaceFormat returns the configured surface format, or
// TextureFormatUndefined before configuration.
func (c *Context) SurfaceFormat() gputypes.TextureFormat {
	if c.configurator == nil {
		return gputypes.TextureFormatUndefined
	}
	return c.configurator.config.Format
}

// AdapterInfo summarises the selected adapter. Part of
// gpucontext.DeviceProvider; Info has the full record.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	if c.gpu == nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return c.gpu.info.Summary()
}

var _ gpucontext.DeviceProvider = (*Context)(nil)
