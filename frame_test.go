// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyAcquire(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want AcquireClass
	}{
		{"success", nil, AcquireSuccess},
		{"lost", ErrSurfaceLost, AcquireRecoverable},
		{"outdated", ErrSurfaceOutdated, AcquireRecoverable},
		{"wrapped lost", fmt.Errorf("acquire: %w", ErrSurfaceLost), AcquireRecoverable},
		{"out of memory", ErrOutOfMemory, AcquireFatal},
		{"wrapped out of memory", fmt.Errorf("%w: %w", ErrOutOfMemory, errors.New("vk")), AcquireFatal},
		{"out of memory beats lost", fmt.Errorf("%w: %w", ErrSurfaceLost, ErrOutOfMemory), AcquireFatal},
		{"timeout", ErrTimeout, AcquireSoft},
		{"unknown", errors.New("something else"), AcquireSoft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyAcquire(tt.err); got != tt.want {
				t.Errorf("ClassifyAcquire(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRenderRecordsClearAndDraw(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})

	outcome, err := c.RenderFrame()
	if err != nil || outcome != FramePresented {
		t.Fatalf("RenderFrame() = %v, %v; want presented", outcome, err)
	}

	if len(g.device.encoders) != 1 {
		t.Fatalf("encoders = %d, want 1", len(g.device.encoders))
	}
	enc := g.device.encoders[0]
	if enc.label != "sindri_encoder" || !enc.finished {
		t.Errorf("encoder label=%q finished=%v", enc.label, enc.finished)
	}
	if len(enc.passes) != 1 {
		t.Fatalf("render passes = %d, want 1", len(enc.passes))
	}
	pass := enc.passes[0]
	if pass.desc.Label != "sindri_render_pass" {
		t.Errorf("pass label = %q", pass.desc.Label)
	}
	if len(pass.desc.ColorAttachments) != 1 {
		t.Fatalf("color attachments = %d, want 1", len(pass.desc.ColorAttachments))
	}
	att := pass.desc.ColorAttachments[0]
	if att.View != g.surface.textures[0].view {
		t.Error("color attachment does not target the acquired view")
	}
	if att.ClearValue != ClearColor {
		t.Errorf("clear = %+v, want %+v", att.ClearValue, ClearColor)
	}
	if pass.pipeline != g.device.pipelines[0] {
		t.Error("pipeline not bound")
	}
	if pass.vertexSlot != 0 || pass.vertexBuffer != g.device.buffers[0] {
		t.Errorf("vertex buffer slot %d bound %v", pass.vertexSlot, pass.vertexBuffer)
	}
	if !pass.ended {
		t.Error("render pass not ended")
	}
	if len(g.queue.submitted) != 1 {
		t.Errorf("submissions = %d, want 1", len(g.queue.submitted))
	}
	tex := g.surface.textures[0]
	if tex.presented != 1 || tex.discarded != 0 {
		t.Errorf("texture presented=%d discarded=%d, want 1/0", tex.presented, tex.discarded)
	}
}

func TestRenderDrawsTriangleEveryFrame(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})

	const frames = 5
	for range frames {
		if err := c.Render(); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	draws := g.device.draws()
	if len(draws) != frames {
		t.Fatalf("draws = %d, want %d", len(draws), frames)
	}
	for i, d := range draws {
		if d != (drawCall{vertexCount: 3, instanceCount: 1}) {
			t.Errorf("draw %d = %+v, want 3 vertices 1 instance", i, d)
		}
	}
	if got := c.Stats().Presented; got != frames {
		t.Errorf("Stats().Presented = %d, want %d", got, frames)
	}
}

func TestRenderSoftErrorSkipsFrame(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	configures := len(g.surface.configs)
	g.surface.acquireErrs = []error{ErrTimeout, errors.New("weird")}

	for range 2 {
		outcome, err := c.RenderFrame()
		if err != nil || outcome != FrameSkippedError {
			t.Fatalf("RenderFrame() = %v, %v; want skipped (error)", outcome, err)
		}
	}
	if len(g.surface.configs) != configures {
		t.Error("soft failure reconfigured the surface")
	}
	if len(g.device.draws()) != 0 {
		t.Error("soft failure recorded draws")
	}

	if outcome, _ := c.RenderFrame(); outcome != FramePresented {
		t.Errorf("frame after soft failures = %v, want presented", outcome)
	}
	if got := c.Stats().SkippedError; got != 2 {
		t.Errorf("Stats().SkippedError = %d, want 2", got)
	}
}

func TestRenderOutdatedReconfigures(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	configures := len(g.surface.configs)
	g.surface.acquireErrs = []error{fmt.Errorf("vk: %w", ErrSurfaceOutdated)}

	outcome, err := c.RenderFrame()
	if err != nil || outcome != FrameSkippedRecovered {
		t.Fatalf("RenderFrame() = %v, %v; want skipped (surface recovered)", outcome, err)
	}
	if n := len(g.surface.configs) - configures; n != 1 {
		t.Errorf("reconfigured %d times, want 1", n)
	}
}

func TestRenderPresentLostReconfigures(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	configures := len(g.surface.configs)
	g.surface.presentErrs = []error{ErrSurfaceLost}

	outcome, err := c.RenderFrame()
	if err != nil || outcome != FrameSkippedRecovered {
		t.Fatalf("RenderFrame() = %v, %v; want skipped (surface recovered)", outcome, err)
	}
	if n := len(g.surface.configs) - configures; n != 1 {
		t.Errorf("reconfigured %d times, want 1", n)
	}
}

func TestRenderSubmitFailureDiscardsTexture(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	g.queue.submitErr = errors.New("queue hung")

	outcome, err := c.RenderFrame()
	if err != nil || outcome != FrameSkippedError {
		t.Fatalf("RenderFrame() = %v, %v; want skipped (error)", outcome, err)
	}
	tex := g.surface.textures[0]
	if tex.discarded != 1 || tex.presented != 0 {
		t.Errorf("texture discarded=%d presented=%d, want 1/0", tex.discarded, tex.presented)
	}
}

func TestRenderRecordFailureDiscards(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *fakeDevice)
	}{
		{"begin pass", func(d *fakeDevice) { d.beginErr = errors.New("bad attachment") }},
		{"finish", func(d *fakeDevice) { d.finishErr = errors.New("encoder invalid") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGPU(800, 600)
			c := g.newContext(t, GPUOptions{})
			tt.setup(g.device)

			outcome, err := c.RenderFrame()
			if err != nil || outcome != FrameSkippedError {
				t.Fatalf("RenderFrame() = %v, %v; want skipped (error)", outcome, err)
			}
			if !g.device.encoders[0].discarded {
				t.Error("encoder not discarded")
			}
			if g.surface.textures[0].discarded != 1 {
				t.Error("texture not discarded")
			}
			if len(g.queue.submitted) != 0 {
				t.Error("partial command buffer submitted")
			}
		})
	}
}

func TestRenderSuboptimalPresentsThenReconfigures(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	configures := len(g.surface.configs)
	g.surface.suboptimal = true

	outcome, err := c.RenderFrame()
	if err != nil || outcome != FramePresented {
		t.Fatalf("RenderFrame() = %v, %v; want presented", outcome, err)
	}
	if g.surface.textures[0].presented != 1 {
		t.Error("suboptimal texture not presented")
	}
	if n := len(g.surface.configs) - configures; n != 1 {
		t.Errorf("reconfigured %d times, want 1", n)
	}
}

func TestRenderRecoveryLimit(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{}, WithRecoveryLimit(2))
	g.surface.acquireErrs = []error{ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceLost}

	for i := range 2 {
		if outcome, err := c.RenderFrame(); err != nil || outcome != FrameSkippedRecovered {
			t.Fatalf("frame %d = %v, %v; want recovered", i, outcome, err)
		}
	}
	outcome, err := c.RenderFrame()
	if outcome != FrameFatal || !errors.Is(err, ErrSurfaceUnrecoverable) {
		t.Fatalf("frame 3 = %v, %v; want fatal ErrSurfaceUnrecoverable", outcome, err)
	}
	if !IsFatal(err) {
		t.Error("IsFatal() = false for ErrSurfaceUnrecoverable")
	}
}

func TestRenderRecoveryLimitResetByPresentedFrame(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{}, WithRecoveryLimit(1))
	g.surface.acquireErrs = []error{ErrSurfaceLost, nil, ErrSurfaceLost, nil}

	want := []FrameOutcome{FrameSkippedRecovered, FramePresented, FrameSkippedRecovered, FramePresented}
	for i, w := range want {
		outcome, err := c.RenderFrame()
		if err != nil || outcome != w {
			t.Fatalf("frame %d = %v, %v; want %v", i, outcome, err, w)
		}
	}
}

func TestRenderUnboundedRecovery(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{}, WithRecoveryLimit(0))
	const n = 500
	for range n {
		g.surface.acquireErrs = append(g.surface.acquireErrs, ErrSurfaceLost)
	}
	for i := range n {
		if outcome, err := c.RenderFrame(); err != nil || outcome != FrameSkippedRecovered {
			t.Fatalf("frame %d = %v, %v; want recovered", i, outcome, err)
		}
	}
	if got := c.Stats().Recovered; got != n {
		t.Errorf("Stats().Recovered = %d, want %d", got, n)
	}
}

func TestFrameStateIdleBetweenFrames(t *testing.T) {
	g := newFakeGPU(800, 600)
	c := g.newContext(t, GPUOptions{})
	g.surface.acquireErrs = []error{nil, ErrSurfaceLost, ErrTimeout}

	for range 3 {
		_, _ = c.RenderFrame()
		if s := c.FrameState(); s != FrameStateIdle {
			t.Errorf("FrameState() = %v after render, want Idle", s)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  fmt.Stringer
		want string
	}{
		{FrameStateIdle, "Idle"},
		{FrameStateSubmitted, "Submitted"},
		{FrameStatePresented, "Presented"},
		{FrameState(77), "FrameState(77)"},
		{AcquireRecoverable, "recoverable"},
		{AcquireClass(9), "AcquireClass(9)"},
		{FramePresented, "presented"},
		{FrameSkippedMinimized, "skipped (minimized)"},
	}
	for _, tt := range tests {
		if s := tt.got.String(); s != tt.want {
			t.Errorf("%T String() = %q, want %q", tt.got, s, tt.want)
		}
	}
}
