// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sindri"
	"github.com/gogpu/sindri/backend"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan HAL
)

// Registry priorities. A real GPU always wins over the no-op HAL.
const (
	priorityVulkan = 100
	priorityNoop   = 0
)

func init() {
	backend.Register(backend.BackendVulkan, priorityVulkan, func() (sindri.Instance, error) {
		api, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, errVulkanUnavailable
		}
		return NewInstance(api, gputypes.BackendVulkan)
	})
	backend.Register(backend.BackendNoop, priorityNoop, func() (sindri.Instance, error) {
		return NewInstance(&noop.API{}, 0)
	})
}
