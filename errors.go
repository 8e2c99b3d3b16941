// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import "errors"

// Setup errors. Any of these leaves no usable Context.
var (
	// ErrSurfaceCreation is returned when no surface can be bound to the window.
	ErrSurfaceCreation = errors.New("sindri: surface creation failed")

	// ErrNoAdapter is returned when no adapter satisfies the request.
	ErrNoAdapter = errors.New("sindri: no suitable GPU adapter found")

	// ErrDeviceCreation is returned when the adapter cannot open a device.
	ErrDeviceCreation = errors.New("sindri: device creation failed")

	// ErrPipelineCreation is returned when the triangle pipeline or its
	// vertex buffer cannot be created.
	ErrPipelineCreation = errors.New("sindri: pipeline creation failed")

	// ErrInvalidOptions is returned for context options outside their range.
	ErrInvalidOptions = errors.New("sindri: invalid options")
)

// Surface errors reported by backends from Acquire and Present.
// Backends wrap their native error with one of these so the frame
// renderer can classify failures with errors.Is.
var (
	// ErrSurfaceLost means the surface must be reconfigured before use.
	ErrSurfaceLost = errors.New("sindri: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("sindri: surface outdated")

	// ErrOutOfMemory means the device ran out of memory. It is fatal.
	ErrOutOfMemory = errors.New("sindri: out of memory")

	// ErrTimeout means no presentable texture became available in time.
	ErrTimeout = errors.New("sindri: surface acquire timeout")
)

var (
	// ErrSurfaceUnrecoverable is returned by Render when the surface kept
	// reporting lost or outdated past the configured recovery limit.
	ErrSurfaceUnrecoverable = errors.New("sindri: surface did not recover")

	// ErrClosed is returned by operations on a closed Context.
	ErrClosed = errors.New("sindri: context closed")
)

// IsFatal reports whether err returned by Render must end the process.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrSurfaceUnrecoverable)
}

// IsSetupError reports whether err was returned by NewContext because the
// GPU could not be brought up.
func IsSetupError(err error) bool {
	return errors.Is(err, ErrSurfaceCreation) ||
		errors.Is(err, ErrNoAdapter) ||
		errors.Is(err, ErrDeviceCreation) ||
		errors.Is(err, ErrPipelineCreation)
}
