// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// halAPI is the entry point of one HAL backend.
type halAPI interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Instance is a HAL instance. It implements sindri.Instance.
type Instance struct {
	hal  hal.Instance
	kind gputypes.Backend
}

// NewInstance creates an instance of api. kind is reported in adapter
// information.
func NewInstance(api halAPI, kind gputypes.Backend) (*Instance, error) {
	inst, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return &Instance{hal: inst, kind: kind}, nil
}

// CreateSurface creates a surface for the window's native handles.
func (i *Instance) CreateSurface(win sindri.Window) (sindri.Surface, error) {
	display, window := win.NativeHandle()
	s, err := i.hal.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	sindri.Logger().Debug("wgpu: surface created", "display", display, "window", window)
	return &Surface{hal: s}, nil
}

// RequestAdapter enumerates adapters able to present to the compatible
// surface and picks one according to req.
func (i *Instance) RequestAdapter(ctx context.Context, req *sindri.AdapterRequest) (sindri.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var hint hal.Surface
	if req.CompatibleSurface != nil {
		s, ok := req.CompatibleSurface.(*Surface)
		if !ok {
			return nil, errForeignHandle
		}
		hint = s.hal
	}

	exposed := i.hal.EnumerateAdapters(hint)
	candidates := make([]candidate, len(exposed))
	for n := range exposed {
		candidates[n] = candidate{
			info:       i.adapterInfo(&exposed[n]),
			compatible: hint == nil || exposed[n].Adapter.SurfaceCapabilities(hint) != nil,
		}
		sindri.Logger().Debug("wgpu: adapter found",
			"name", candidates[n].info.Name,
			"device_type", candidates[n].info.DeviceType,
			"compatible", candidates[n].compatible)
	}

	n, err := chooseAdapter(candidates, req.PowerPreference, req.ForceFallback)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Adapter{exposed: exposed[n], info: candidates[n].info}, nil
}

// adapterInfo reports the adapter's own backend, or the instance kind
// when the HAL leaves it empty.
func (i *Instance) adapterInfo(a *hal.ExposedAdapter) sindri.AdapterInfo {
	info := sindri.AdapterInfo{
		Name:       a.Info.Name,
		DeviceType: a.Info.DeviceType,
		Backend:    a.Info.Backend,
		Driver:     a.Info.Driver,
	}
	if info.Backend == gputypes.BackendEmpty {
		info.Backend = i.kind
	}
	return info
}

// Destroy releases the HAL instance.
func (i *Instance) Destroy() {
	i.hal.Destroy()
}

var _ sindri.Instance = (*Instance)(nil)
