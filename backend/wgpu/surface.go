// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// Surface is a HAL surface. It implements sindri.Surface.
type Surface struct {
	hal hal.Surface

	// device and format are from the last successful Configure.
	device *Device
	format gputypes.TextureFormat
}

// Configure applies cfg. The frame latency hint is not forwarded: the HAL
// sizes its swapchain from the present mode.
func (s *Surface) Configure(dev sindri.Device, cfg *sindri.SurfaceConfiguration) error {
	d, ok := dev.(*Device)
	if !ok {
		return errForeignHandle
	}
	if s.device != nil && s.device != d {
		s.unconfigure(s.device)
	}
	if err := s.hal.Configure(d.hal, surfaceConfigToHAL(cfg)); err != nil {
		return translate(err)
	}
	if s.device != d {
		d.surfaces = append(d.surfaces, s)
	}
	s.device, s.format = d, cfg.Format
	return nil
}

// unconfigure detaches s from d if d is its current device.
func (s *Surface) unconfigure(d *Device) {
	if s.device != d {
		return
	}
	s.hal.Unconfigure(d.hal)
	s.device = nil
	d.surfaces = slices.DeleteFunc(d.surfaces, func(o *Surface) bool { return o == s })
}

// Acquire returns the next swapchain texture with a view over it.
func (s *Surface) Acquire() (sindri.SurfaceTexture, error) {
	if s.device == nil {
		return nil, errNotConfigured
	}
	acq, err := s.hal.AcquireTexture(nil)
	if err != nil {
		return nil, translate(err)
	}
	view, err := s.device.hal.CreateTextureView(acq.Texture, &hal.TextureViewDescriptor{
		Label:           s.device.label + "_surface_view",
		Format:          s.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		s.hal.DiscardTexture(acq.Texture)
		return nil, fmt.Errorf("create surface view: %w", translate(err))
	}
	return &surfaceTexture{
		surface:    s,
		texture:    acq.Texture,
		view:       view,
		suboptimal: acq.Suboptimal,
	}, nil
}

// Destroy unconfigures and releases the surface.
func (s *Surface) Destroy() {
	if s.device != nil {
		s.unconfigure(s.device)
	}
	s.hal.Destroy()
}

// surfaceTexture is an acquired swapchain texture and its view.
type surfaceTexture struct {
	surface    *Surface
	texture    hal.SurfaceTexture
	view       hal.TextureView
	suboptimal bool
	done       bool
}

func (t *surfaceTexture) View() sindri.TextureView { return t.view }
func (t *surfaceTexture) Suboptimal() bool         { return t.suboptimal }

// Present queues the texture for display.
func (t *surfaceTexture) Present() error {
	if t.done {
		return nil
	}
	t.done = true
	d := t.surface.device
	d.hal.DestroyTextureView(t.view)
	return translate(d.queue.hal.Present(t.surface.hal, t.texture, nil))
}

// Discard returns the texture to the swapchain unpresented.
func (t *surfaceTexture) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.surface.device.hal.DestroyTextureView(t.view)
	t.surface.hal.DiscardTexture(t.texture)
}

var _ sindri.Surface = (*Surface)(nil)
