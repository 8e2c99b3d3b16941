// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/sindri"
	"github.com/gogpu/wgpu/hal"
)

var (
	errVulkanUnavailable  = errors.New("wgpu: vulkan backend not available")
	errForeignHandle      = errors.New("wgpu: object was not created by this backend")
	errNotConfigured      = errors.New("wgpu: surface not configured")
	errSurfaceUnsupported = errors.New("wgpu: adapter cannot present to surface")
)

// translate wraps HAL errors with the sindri sentinel of the same meaning.
// Errors without a counterpart are returned unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return fmt.Errorf("%w: %w", sindri.ErrOutOfMemory, err)
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", sindri.ErrSurfaceLost, err)
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", sindri.ErrSurfaceOutdated, err)
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w: %w", sindri.ErrTimeout, err)
	default:
		return err
	}
}
