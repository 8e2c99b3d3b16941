// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/sindri"
)

// Well-known backend names.
const (
	// BackendVulkan drives a real GPU through the Vulkan HAL.
	BackendVulkan = "vulkan"

	// BackendNoop is a headless HAL that accepts every call and draws
	// nothing. Useful for smoke tests on machines without a GPU.
	BackendNoop = "noop"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered, or when no backend is registered at all.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrAlreadyOpen is returned by Open while an instance it returned
	// earlier has not been destroyed.
	ErrAlreadyOpen = errors.New("backend: instance already open")
)

// InstanceFactory creates a backend instance.
type InstanceFactory func() (sindri.Instance, error)
