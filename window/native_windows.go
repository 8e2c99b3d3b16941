// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package window

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// NativeHandle returns the module instance (HINSTANCE) and the HWND.
func (w *Window) NativeHandle() (display, window uintptr) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return 0, uintptr(unsafe.Pointer(w.glw.GetWin32Window()))
	}
	return uintptr(module), uintptr(unsafe.Pointer(w.glw.GetWin32Window()))
}

// Supported reports whether NativeHandle yields handles a surface can be
// created from.
func Supported() error { return nil }
