// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend holds the registry of graphics backends and creates the
// process backend instance.
//
// Backends register an InstanceFactory from an init function:
//
//	import _ "github.com/gogpu/sindri/backend/wgpu" // registers "vulkan" and "noop"
//
// and the application opens exactly one instance before creating any
// surface:
//
//	inst, err := backend.Open("") // highest priority backend
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Destroy()
package backend
