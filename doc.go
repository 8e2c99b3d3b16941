// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sindri drives the lifecycle of a WebGPU graphics context bound
// to one window: adapter and device negotiation, surface configuration,
// pipeline setup and the per-frame acquire, record, submit and present
// cycle.
//
// # Quick Start
//
//	inst, err := backend.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Destroy()
//
//	err = window.Run(window.DefaultConfig(), func(w *window.Window) error {
//	    gc, err := sindri.NewContext(ctx, inst, w, sindri.ParseArgs(os.Args[1:]))
//	    if err != nil {
//	        return err
//	    }
//	    defer gc.Close()
//	    return eventloop.Run(ctx, w, gc)
//	})
//
// # Architecture
//
// The package is backend-neutral. It talks to the GPU through the small
// interfaces in gpu.go (Instance, Adapter, Surface, Device, Queue and the
// command recording types); backend/wgpu implements them on the pure Go
// gogpu/wgpu HAL and registers itself with the backend registry.
//
//   - Geometry: Vertex, TriangleVertices, VertexLayout
//   - Negotiation: surface first, then adapter (GPUOptions), then device
//   - Surface configuration: sRGB format if offered, Fifo, size floored to 1
//   - Pipeline: embedded WGSL compiled to SPIR-V with naga
//   - Frames: Context.Render with the failure policy of ClassifyAcquire
//
// # Failure policy
//
// Setup failures are returned by NewContext and end the program. During
// rendering a lost or outdated surface is reconfigured and the frame is
// skipped, out-of-memory is fatal, and any other failure is logged and the
// frame is skipped. Render only returns an error when the program must
// stop.
//
// # Logging
//
// sindri logs through log/slog and is silent by default; see SetLogger.
package sindri
