// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || freebsd || openbsd || netbsd) && !wayland

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the X11 display connection and window id.
func (w *Window) NativeHandle() (display, window uintptr) {
	return uintptr(unsafe.Pointer(glfw.GetX11Display())), uintptr(w.glw.GetX11Window())
}

// Supported reports whether NativeHandle yields handles a surface can be
// created from.
func Supported() error { return nil }
