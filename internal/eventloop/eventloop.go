// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package eventloop drives a render target from a polled event source.
//
// The window system is reduced to a Source that returns the events seen
// since the last poll, and the graphics context to a Target with Resize
// and Render. Tests feed scripted events without a display.
package eventloop

import (
	"context"
	"fmt"

	"github.com/gogpu/sindri"
)

// Event is one window event.
type Event interface {
	isEvent()
}

// CloseRequested asks the loop to stop.
type CloseRequested struct{}

// Resized reports a new framebuffer size in physical pixels. Either
// dimension may be zero while the window is minimized.
type Resized struct {
	Width, Height int
}

// RedrawRequested asks for one frame.
type RedrawRequested struct{}

func (CloseRequested) isEvent()  {}
func (Resized) isEvent()         {}
func (RedrawRequested) isEvent() {}

func (r Resized) String() string { return fmt.Sprintf("Resized(%dx%d)", r.Width, r.Height) }

// Source yields the events that arrived since the previous call. Poll may
// block until at least one event is available.
type Source interface {
	Poll() []Event
}

// Target is what the loop drives.
type Target interface {
	Resize(width, height int) error
	Render() error
}

// Run polls src and dispatches to target until a CloseRequested event is
// seen, ctx is done or rendering fails.
//
// Events of one poll are handled in order. Resizes are coalesced: only the
// last Resized of a poll is applied, before the first redraw that follows
// it. A failed resize is logged and the loop continues unless the error is
// fatal. A Render error is returned.
func Run(ctx context.Context, src Source, target Target) error {
	log := sindri.Logger()
	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Debug("eventloop: context done", "frames", frames)
			return nil
		}

		var pending *Resized
		for _, ev := range src.Poll() {
			switch e := ev.(type) {
			case CloseRequested:
				log.Debug("eventloop: close requested", "frames", frames)
				return nil
			case Resized:
				pending = &e
			case RedrawRequested:
				if pending != nil {
					if err := resize(target, *pending); err != nil {
						return err
					}
					pending = nil
				}
				if err := target.Render(); err != nil {
					return fmt.Errorf("render frame %d: %w", frames, err)
				}
				frames++
			}
		}
		if pending != nil {
			if err := resize(target, *pending); err != nil {
				return err
			}
		}
	}
}

func resize(target Target, r Resized) error {
	err := target.Resize(r.Width, r.Height)
	switch {
	case err == nil:
		sindri.Logger().Debug("eventloop: resized", "width", r.Width, "height", r.Height)
		return nil
	case sindri.IsFatal(err):
		return fmt.Errorf("resize to %dx%d: %w", r.Width, r.Height, err)
	default:
		sindri.Logger().Warn("eventloop: resize failed", "width", r.Width, "height", r.Height, "err", err)
		return nil
	}
}
