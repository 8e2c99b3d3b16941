// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the sindri GPU interfaces on the pure Go
// gogpu/wgpu HAL.
//
// Importing the package registers two backends with the backend registry:
//
//   - "vulkan": the Vulkan HAL, used for real windows
//   - "noop": the no-op HAL, for headless smoke runs
//
// All HAL handles stay inside this package. Driver errors are translated
// into sindri sentinels (ErrSurfaceLost, ErrOutOfMemory and so on) so the
// frame renderer can classify them without knowing about the HAL.
package wgpu
