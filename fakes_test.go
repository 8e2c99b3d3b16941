// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// Fakes for the GPU interfaces. They record every call so tests can
// assert on the exact command stream a Context produces.

type fakeWindow struct {
	width, height int
}

func (w *fakeWindow) NativeHandle() (uintptr, uintptr) { return 1, 2 }
func (w *fakeWindow) FramebufferSize() (int, int)      { return w.width, w.height }

type fakeInstance struct {
	surface *fakeSurface
	adapter *fakeAdapter

	surfaceErr error
	adapterErr error

	// calls records the order of CreateSurface and RequestAdapter.
	calls    []string
	requests []*AdapterRequest
}

func (i *fakeInstance) CreateSurface(Window) (Surface, error) {
	i.calls = append(i.calls, "CreateSurface")
	if i.surfaceErr != nil {
		return nil, i.surfaceErr
	}
	return i.surface, nil
}

func (i *fakeInstance) RequestAdapter(ctx context.Context, req *AdapterRequest) (Adapter, error) {
	i.calls = append(i.calls, "RequestAdapter")
	i.requests = append(i.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if i.adapterErr != nil {
		return nil, i.adapterErr
	}
	return i.adapter, nil
}

func (i *fakeInstance) Destroy() {}

type fakeAdapter struct {
	info AdapterInfo
	caps *SurfaceCapabilities

	capsErr   error
	deviceErr error

	device      *fakeDevice
	queue       *fakeQueue
	deviceDescs []*DeviceDescriptor
	destroyed   int
}

func (a *fakeAdapter) Info() AdapterInfo { return a.info }

func (a *fakeAdapter) SurfaceCapabilities(Surface) (*SurfaceCapabilities, error) {
	if a.capsErr != nil {
		return nil, a.capsErr
	}
	return a.caps, nil
}

func (a *fakeAdapter) RequestDevice(_ context.Context, desc *DeviceDescriptor) (Device, Queue, error) {
	a.deviceDescs = append(a.deviceDescs, desc)
	if a.deviceErr != nil {
		return nil, nil, a.deviceErr
	}
	return a.device, a.queue, nil
}

func (a *fakeAdapter) Destroy() { a.destroyed++ }

type fakeSurface struct {
	configs      []SurfaceConfiguration
	configureErr error

	// acquireErrs is consumed one entry per Acquire; a nil entry or an
	// empty queue yields a texture.
	acquireErrs []error
	presentErrs []error
	suboptimal  bool

	textures  []*fakeTexture
	destroyed int
}

func (s *fakeSurface) Configure(_ Device, cfg *SurfaceConfiguration) error {
	if s.configureErr != nil {
		return s.configureErr
	}
	s.configs = append(s.configs, *cfg)
	return nil
}

func (s *fakeSurface) Acquire() (SurfaceTexture, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	tex := &fakeTexture{suboptimal: s.suboptimal}
	if len(s.presentErrs) > 0 {
		tex.presentErr = s.presentErrs[0]
		s.presentErrs = s.presentErrs[1:]
	}
	s.textures = append(s.textures, tex)
	return tex, nil
}

func (s *fakeSurface) Destroy() { s.destroyed++ }

type fakeView struct{ id int }

type fakeTexture struct {
	view       fakeView
	suboptimal bool
	presentErr error

	presented int
	discarded int
}

func (t *fakeTexture) View() TextureView { return t.view }
func (t *fakeTexture) Suboptimal() bool  { return t.suboptimal }
func (t *fakeTexture) Discard()          { t.discarded++ }

func (t *fakeTexture) Present() error {
	t.presented++
	return t.presentErr
}

type fakeDevice struct {
	pipelineErr error
	bufferErr   error
	encoderErr  error
	beginErr    error
	finishErr   error

	pipelineDescs []*RenderPipelineDescriptor
	pipelines     []*fakePipeline
	buffers       []*fakeBuffer
	encoders      []*fakeEncoder

	destroyed int
}

func (d *fakeDevice) Destroy() { d.destroyed++ }

func (d *fakeDevice) CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error) {
	d.pipelineDescs = append(d.pipelineDescs, desc)
	if d.pipelineErr != nil {
		return nil, d.pipelineErr
	}
	p := &fakePipeline{}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *fakeDevice) CreateBufferInit(desc *BufferInitDescriptor) (Buffer, error) {
	if d.bufferErr != nil {
		return nil, d.bufferErr
	}
	b := &fakeBuffer{label: desc.Label, usage: desc.Usage, contents: append([]byte(nil), desc.Contents...)}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *fakeDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	if d.encoderErr != nil {
		return nil, d.encoderErr
	}
	e := &fakeEncoder{label: label, beginErr: d.beginErr, finishErr: d.finishErr}
	d.encoders = append(d.encoders, e)
	return e, nil
}

// draws returns every draw recorded on the device, in order.
func (d *fakeDevice) draws() []drawCall {
	var out []drawCall
	for _, e := range d.encoders {
		for _, p := range e.passes {
			out = append(out, p.draws...)
		}
	}
	return out
}

type fakePipeline struct{ destroyed int }

func (p *fakePipeline) Destroy() { p.destroyed++ }

type fakeBuffer struct {
	label     string
	usage     gputypes.BufferUsage
	contents  []byte
	destroyed int
}

func (b *fakeBuffer) Size() uint64 { return uint64(len(b.contents)) }
func (b *fakeBuffer) Destroy()     { b.destroyed++ }

type fakeCommandBuffer struct{ encoder *fakeEncoder }

type fakeEncoder struct {
	label     string
	beginErr  error
	finishErr error

	passes    []*fakePass
	finished  bool
	discarded bool
}

func (e *fakeEncoder) BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error) {
	if e.beginErr != nil {
		return nil, e.beginErr
	}
	p := &fakePass{desc: desc}
	e.passes = append(e.passes, p)
	return p, nil
}

var errPassOpen = errors.New("fake: render pass still open")

func (e *fakeEncoder) Finish() (CommandBuffer, error) {
	for _, p := range e.passes {
		if !p.ended {
			return nil, errPassOpen
		}
	}
	if e.finishErr != nil {
		return nil, e.finishErr
	}
	e.finished = true
	return fakeCommandBuffer{encoder: e}, nil
}

func (e *fakeEncoder) Discard() { e.discarded = true }

type drawCall struct {
	vertexCount, instanceCount, firstVertex, firstInstance uint32
}

type fakePass struct {
	desc         *RenderPassDescriptor
	pipeline     RenderPipeline
	vertexSlot   uint32
	vertexBuffer Buffer
	draws        []drawCall
	ended        bool
}

func (p *fakePass) SetPipeline(rp RenderPipeline) { p.pipeline = rp }

func (p *fakePass) SetVertexBuffer(slot uint32, b Buffer) {
	p.vertexSlot = slot
	p.vertexBuffer = b
}

func (p *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{vertexCount, instanceCount, firstVertex, firstInstance})
}

func (p *fakePass) End() error {
	p.ended = true
	return nil
}

type fakeQueue struct {
	submitErr error
	submitted []CommandBuffer
}

func (q *fakeQueue) Submit(cmd CommandBuffer) error {
	if q.submitErr != nil {
		return q.submitErr
	}
	q.submitted = append(q.submitted, cmd)
	return nil
}

// fakeGPU bundles one fake of each kind wired together.
type fakeGPU struct {
	instance *fakeInstance
	adapter  *fakeAdapter
	surface  *fakeSurface
	device   *fakeDevice
	queue    *fakeQueue
	window   *fakeWindow
}

func newFakeGPU(width, height int) *fakeGPU {
	g := &fakeGPU{
		surface: &fakeSurface{},
		device:  &fakeDevice{},
		queue:   &fakeQueue{},
		window:  &fakeWindow{width: width, height: height},
	}
	g.adapter = &fakeAdapter{
		info: AdapterInfo{
			Name:       "Fake GPU",
			DeviceType: gputypes.DeviceTypeDiscreteGPU,
			Backend:    gputypes.BackendVulkan,
		},
		caps: &SurfaceCapabilities{
			Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb},
			PresentModes: []PresentMode{PresentModeFifo, PresentModeMailbox},
			AlphaModes:   []AlphaMode{AlphaModeOpaque, AlphaModePremultiplied},
		},
		device: g.device,
		queue:  g.queue,
	}
	g.instance = &fakeInstance{surface: g.surface, adapter: g.adapter}
	return g
}

// newContext creates a Context on g and fails the test on error.
func (g *fakeGPU) newContext(t *testing.T, opts GPUOptions, options ...ContextOption) *Context {
	t.Helper()
	c, err := NewContext(context.Background(), g.instance, g.window, opts, options...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}
