// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"context"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// candidate is one enumerated adapter as seen by chooseAdapter.
type candidate struct {
	info       sindri.AdapterInfo
	compatible bool
}

// Device type preference orders, best first. CPU adapters are always
// last unless a fallback adapter is forced.
var (
	highPerformanceOrder = []gputypes.DeviceType{
		gputypes.DeviceTypeDiscreteGPU,
		gputypes.DeviceTypeIntegratedGPU,
		gputypes.DeviceTypeVirtualGPU,
		gputypes.DeviceTypeOther,
		gputypes.DeviceTypeCPU,
	}
	lowPowerOrder = []gputypes.DeviceType{
		gputypes.DeviceTypeIntegratedGPU,
		gputypes.DeviceTypeDiscreteGPU,
		gputypes.DeviceTypeVirtualGPU,
		gputypes.DeviceTypeOther,
		gputypes.DeviceTypeCPU,
	}
)

func deviceRank(t gputypes.DeviceType, pref gputypes.PowerPreference) int {
	order := highPerformanceOrder
	if pref == gputypes.PowerPreferenceLowPower {
		order = lowPowerOrder
	}
	if i := slices.Index(order, t); i >= 0 {
		return i
	}
	return len(order)
}

// chooseAdapter returns the index of the best compatible candidate. With
// forceFallback only CPU adapters qualify. Ties keep enumeration order.
func chooseAdapter(candidates []candidate, pref gputypes.PowerPreference, forceFallback bool) (int, error) {
	best, bestRank := -1, 0
	for i, c := range candidates {
		if !c.compatible {
			continue
		}
		if forceFallback && c.info.DeviceType != gputypes.DeviceTypeCPU {
			continue
		}
		r := deviceRank(c.info.DeviceType, pref)
		if best < 0 || r < bestRank {
			best, bestRank = i, r
		}
	}
	if best < 0 {
		return -1, fmt.Errorf("%w: %d enumerated, force_fallback=%t", sindri.ErrNoAdapter, len(candidates), forceFallback)
	}
	return best, nil
}

// Adapter is an enumerated HAL adapter. It implements sindri.Adapter.
type Adapter struct {
	exposed hal.ExposedAdapter
	info    sindri.AdapterInfo
}

// Info identifies the adapter.
func (a *Adapter) Info() sindri.AdapterInfo { return a.info }

// SurfaceCapabilities reports what s supports on this adapter.
func (a *Adapter) SurfaceCapabilities(s sindri.Surface) (*sindri.SurfaceCapabilities, error) {
	hs, ok := s.(*Surface)
	if !ok {
		return nil, errForeignHandle
	}
	caps := a.exposed.Adapter.SurfaceCapabilities(hs.hal)
	if caps == nil {
		return nil, errSurfaceUnsupported
	}
	return convertCapabilities(caps), nil
}

// RequestDevice opens the adapter.
func (a *Adapter) RequestDevice(ctx context.Context, desc *sindri.DeviceDescriptor) (sindri.Device, sindri.Queue, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	open, err := a.exposed.Adapter.Open(desc.RequiredFeatures, desc.RequiredLimits)
	if err != nil {
		return nil, nil, fmt.Errorf("open device: %w", translate(err))
	}
	d := newDevice(open.Device, open.Queue, desc.Label)
	return d, d.queue, nil
}

// Destroy is a no-op: adapters belong to the instance that enumerated
// them and are released with it.
func (a *Adapter) Destroy() {}

var _ sindri.Adapter = (*Adapter)(nil)
