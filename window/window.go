// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window opens a desktop window without a client graphics API and
// exposes its native handles and events.
//
// glfw must be driven from the main OS thread. Callers lock it in an init
// function before calling Run:
//
//	func init() { runtime.LockOSThread() }
package window

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/sindri"
	"github.com/gogpu/sindri/internal/eventloop"
)

// ErrUnsupportedPlatform is returned by Run and Supported on platforms
// where no surface can be created from a glfw window.
var ErrUnsupportedPlatform = errors.New("window: unsupported platform")

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DefaultConfig returns a 1280x720 window titled "Sindri Engine".
func DefaultConfig() Config {
	return Config{
		Title:  "Sindri Engine",
		Width:  1280,
		Height: 720,
	}
}

// WithTitle returns a copy of c with the given title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the given size in screen coordinates.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// Window is an open glfw window. It implements sindri.Window and
// eventloop.Source. A Window is valid only inside the Run callback.
type Window struct {
	glw     *glfw.Window
	pending []eventloop.Event
}

// Run opens a window, calls fn with it and closes the window when fn
// returns. Everything created from the window must be released before fn
// returns.
func Run(cfg Config, fn func(*Window) error) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if err := Supported(); err != nil {
		return err
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("window: create: %w", err)
	}
	defer glw.Destroy()

	w := &Window{glw: glw}
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, eventloop.Resized{Width: width, Height: height})
	})
	glw.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, eventloop.CloseRequested{})
	})

	fw, fh := w.FramebufferSize()
	sindri.Logger().Info("window: opened", "title", cfg.Title, "width", fw, "height", fh)
	defer sindri.Logger().Debug("window: closing")

	return fn(w)
}

// FramebufferSize returns the drawable size in physical pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.glw.GetFramebufferSize()
}

// Poll processes pending window system events and returns them, followed
// by one RedrawRequested unless the window is closing.
func (w *Window) Poll() []eventloop.Event {
	glfw.PollEvents()
	events := w.pending
	w.pending = nil
	if w.glw.ShouldClose() {
		if len(events) == 0 {
			events = append(events, eventloop.CloseRequested{})
		}
		return events
	}
	return append(events, eventloop.RedrawRequested{})
}

var (
	_ sindri.Window    = (*Window)(nil)
	_ eventloop.Source = (*Window)(nil)
)
