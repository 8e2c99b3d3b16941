// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// NoAdapterHint is the operator-facing advice printed when no adapter
// could be found.
const NoAdapterHint = "No suitable GPU adapters found. Try --fallback-gpu or update Vulkan drivers."

// negotiated is everything backend negotiation produces.
type negotiated struct {
	surface Surface
	adapter Adapter
	device  Device
	queue   Queue
	info    AdapterInfo
}

// release destroys whatever was created, newest first.
func (n *negotiated) release() {
	if n.device != nil {
		n.device.Destroy()
		n.device = nil
	}
	if n.adapter != nil {
		n.adapter.Destroy()
		n.adapter = nil
	}
	if n.surface != nil {
		n.surface.Destroy()
		n.surface = nil
	}
}

// negotiate creates the surface, selects an adapter compatible with it and
// opens a device. The surface comes first because adapter compatibility
// depends on it. On error nothing created here is left alive.
func negotiate(ctx context.Context, inst Instance, win Window, opts GPUOptions, o *contextOptions) (*negotiated, error) {
	log := Logger()
	n := &negotiated{}

	surface, err := inst.CreateSurface(win)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	n.surface = surface

	req := opts.AdapterRequest(surface)
	log.Debug("sindri: requesting adapter",
		"power_preference", req.PowerPreference,
		"force_fallback", req.ForceFallback)

	adapter, err := inst.RequestAdapter(ctx, req)
	if err != nil {
		n.release()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request adapter: %w", ctxErr)
		}
		if errors.Is(err, ErrNoAdapter) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	n.adapter = adapter
	n.info = adapter.Info()

	log.Info("sindri: adapter selected",
		"name", n.info.Name,
		"device_type", n.info.DeviceType,
		"backend", n.info.Backend)

	device, queue, err := adapter.RequestDevice(ctx, &DeviceDescriptor{
		Label:            o.label("device"),
		RequiredFeatures: gputypes.Features(0),
		RequiredLimits:   gputypes.DefaultLimits(),
	})
	if err != nil {
		n.release()
		return nil, fmt.Errorf("%w: %w", ErrDeviceCreation, err)
	}
	n.device = device
	n.queue = queue

	log.Info("sindri: device ready", "label", o.label("device"))
	return n, nil
}
