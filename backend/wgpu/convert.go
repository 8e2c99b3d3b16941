// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

// HAL and sindri enumerate present and alpha modes separately; these
// switches are the only place the two meet.

func presentModeFromHAL(m hal.PresentMode) (sindri.PresentMode, bool) {
	switch m {
	case hal.PresentModeFifo:
		return sindri.PresentModeFifo, true
	case hal.PresentModeFifoRelaxed:
		return sindri.PresentModeFifoRelaxed, true
	case hal.PresentModeImmediate:
		return sindri.PresentModeImmediate, true
	case hal.PresentModeMailbox:
		return sindri.PresentModeMailbox, true
	default:
		return 0, false
	}
}

func presentModeToHAL(m sindri.PresentMode) hal.PresentMode {
	switch m {
	case sindri.PresentModeFifoRelaxed:
		return hal.PresentModeFifoRelaxed
	case sindri.PresentModeImmediate:
		return hal.PresentModeImmediate
	case sindri.PresentModeMailbox:
		return hal.PresentModeMailbox
	default:
		return hal.PresentModeFifo
	}
}

func alphaModeFromHAL(m hal.CompositeAlphaMode) (sindri.AlphaMode, bool) {
	switch m {
	case hal.CompositeAlphaModeOpaque:
		return sindri.AlphaModeOpaque, true
	case hal.CompositeAlphaModePremultiplied:
		return sindri.AlphaModePremultiplied, true
	case hal.CompositeAlphaModeUnpremultiplied:
		return sindri.AlphaModePostmultiplied, true
	case hal.CompositeAlphaModeInherit:
		return sindri.AlphaModeInherit, true
	default:
		return 0, false
	}
}

func alphaModeToHAL(m sindri.AlphaMode) hal.CompositeAlphaMode {
	switch m {
	case sindri.AlphaModePremultiplied:
		return hal.CompositeAlphaModePremultiplied
	case sindri.AlphaModePostmultiplied:
		return hal.CompositeAlphaModeUnpremultiplied
	case sindri.AlphaModeInherit:
		return hal.CompositeAlphaModeInherit
	default:
		return hal.CompositeAlphaModeOpaque
	}
}

// convertCapabilities keeps the adapter's ordering and drops modes sindri
// does not know.
func convertCapabilities(c *hal.SurfaceCapabilities) *sindri.SurfaceCapabilities {
	out := &sindri.SurfaceCapabilities{
		Formats: append(c.Formats[:0:0], c.Formats...),
	}
	for _, m := range c.PresentModes {
		if pm, ok := presentModeFromHAL(m); ok {
			out.PresentModes = append(out.PresentModes, pm)
		}
	}
	for _, m := range c.AlphaModes {
		if am, ok := alphaModeFromHAL(m); ok {
			out.AlphaModes = append(out.AlphaModes, am)
		}
	}
	return out
}

func surfaceConfigToHAL(cfg *sindri.SurfaceConfiguration) *hal.SurfaceConfiguration {
	return &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: presentModeToHAL(cfg.PresentMode),
		AlphaMode:   alphaModeToHAL(cfg.AlphaMode),
	}
}
