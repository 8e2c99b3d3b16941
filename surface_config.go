// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// FrameLatency is the number of frames the surface may queue ahead.
const FrameLatency = 2

var errNoSurfaceFormat = errors.New("sindri: surface reports no formats")

// isSRGB reports whether f stores color sRGB-encoded.
func isSRGB(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// chooseFormat returns the first sRGB format, or the first format when
// none is sRGB. Colors are then slightly off but rendering still works.
func chooseFormat(formats []gputypes.TextureFormat) (gputypes.TextureFormat, error) {
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined, errNoSurfaceFormat
	}
	for _, f := range formats {
		if isSRGB(f) {
			return f, nil
		}
	}
	return formats[0], nil
}

// clampExtent floors a window dimension to 1. A zero-sized surface is
// invalid.
func clampExtent(v int) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}

// initialSurfaceConfig derives the first configuration from capabilities
// and the window size.
func initialSurfaceConfig(caps *SurfaceCapabilities, width, height int) (SurfaceConfiguration, error) {
	if caps == nil {
		return SurfaceConfiguration{}, errNoSurfaceFormat
	}
	format, err := chooseFormat(caps.Formats)
	if err != nil {
		return SurfaceConfiguration{}, err
	}
	alpha := AlphaModeOpaque
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	return SurfaceConfiguration{
		Usage:                      gputypes.TextureUsageRenderAttachment,
		Format:                     format,
		Width:                      clampExtent(width),
		Height:                     clampExtent(height),
		PresentMode:                PresentModeFifo,
		AlphaMode:                  alpha,
		DesiredMaximumFrameLatency: FrameLatency,
	}, nil
}

// surfaceConfigurator owns the current configuration of one surface and
// reapplies it on demand.
type surfaceConfigurator struct {
	surface Surface
	device  Device
	config  SurfaceConfiguration

	// minimized is set by a zero-sized resize and cleared by the next
	// non-zero one.
	minimized bool

	// configures counts Configure calls, including the initial one.
	configures int
}

func newSurfaceConfigurator(surface Surface, device Device, caps *SurfaceCapabilities, width, height int) (*surfaceConfigurator, error) {
	cfg, err := initialSurfaceConfig(caps, width, height)
	if err != nil {
		return nil, err
	}
	sc := &surfaceConfigurator{surface: surface, device: device, config: cfg}
	if err := sc.apply(); err != nil {
		return nil, err
	}
	Logger().Info("sindri: surface configured",
		"format", cfg.Format,
		"width", cfg.Width,
		"height", cfg.Height,
		"present_mode", cfg.PresentMode,
		"alpha_mode", cfg.AlphaMode)
	return sc, nil
}

func (sc *surfaceConfigurator) apply() error {
	sc.configures++
	cfg := sc.config
	if err := sc.surface.Configure(sc.device, &cfg); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	return nil
}

// resize stores and applies a new size. A zero width or height marks the
// window minimized and leaves the configuration untouched.
func (sc *surfaceConfigurator) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		if !sc.minimized {
			Logger().Debug("sindri: window minimized, surface left as is",
				"width", width, "height", height)
		}
		sc.minimized = true
		return nil
	}
	sc.minimized = false
	sc.config.Width = uint32(width)
	sc.config.Height = uint32(height)
	Logger().Debug("sindri: reconfiguring surface", "width", width, "height", height)
	return sc.apply()
}

// reconfigure reapplies the stored configuration, used after the surface
// reported lost or outdated.
func (sc *surfaceConfigurator) reconfigure() error {
	Logger().Debug("sindri: reapplying surface configuration",
		"width", sc.config.Width, "height", sc.config.Height)
	return sc.apply()
}
