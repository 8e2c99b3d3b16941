// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !((linux || freebsd || openbsd || netbsd) && !wayland) && !windows

package window

// NativeHandle returns zero handles: surfaces from glfw windows are
// supported only on X11 and Win32. Wayland builds are not supported.
func (w *Window) NativeHandle() (display, window uintptr) {
	return 0, 0
}

// Supported reports whether NativeHandle yields handles a surface can be
// created from.
func Supported() error { return ErrUnsupportedPlatform }
