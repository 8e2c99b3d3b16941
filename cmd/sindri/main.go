// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command sindri opens a window and draws a white triangle on a dark
// background until the window is closed.
//
// Usage:
//
//	sindri [--fallback-gpu] [--low-power]
//
// Unknown arguments are ignored. Structured logs go to stderr; the level
// is taken from SINDRI_LOG (debug, info, warn, error, off). SINDRI_BACKEND
// selects a registered backend by name (vulkan, noop).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/gogpu/sindri"
	"github.com/gogpu/sindri/backend"
	_ "github.com/gogpu/sindri/backend/wgpu" // registers the vulkan and noop backends
	"github.com/gogpu/sindri/internal/eventloop"
	"github.com/gogpu/sindri/window"
)

const fallbackWarning = "WARNING: Running in fallback GPU mode (software renderer). Performance will be reduced."

func init() {
	// glfw requires the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	sindri.SetLogger(newLogger(os.Getenv("SINDRI_LOG")))
	log := sindri.Logger()

	opts := sindri.ParseArgs(args)
	fmt.Fprintf(stdout, "GPU options: %s\n", opts)
	if opts.Fallback {
		fmt.Fprintln(stdout, fallbackWarning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inst, err := backend.Open(os.Getenv("SINDRI_BACKEND"))
	if err != nil {
		log.Error("open backend", "err", err, "available", backend.Available())
		return err
	}
	defer inst.Destroy()

	err = window.Run(window.DefaultConfig(), func(w *window.Window) error {
		gfx, err := sindri.NewContext(ctx, inst, w, opts)
		if err != nil {
			return err
		}
		defer gfx.Close()

		fmt.Fprintf(stdout, "wgpu adapter: %s\n", gfx.Info())
		log.Info("surface configured", "config", gfx.Config())

		err = eventloop.Run(ctx, w, gfx)
		log.Info("event loop finished", "stats", gfx.Stats())
		return err
	})

	return report(stdout, err)
}

// report logs the outcome of the window scope and returns the error that
// makes the process exit non-zero. Running out of GPU memory ends the
// program like a closed window.
func report(stdout io.Writer, err error) error {
	log := sindri.Logger()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sindri.ErrNoAdapter):
		fmt.Fprintln(stdout, sindri.NoAdapterHint)
		log.Error("no adapter", "err", err)
	case sindri.IsSetupError(err):
		log.Error("graphics setup failed", "err", err)
	case errors.Is(err, sindri.ErrOutOfMemory):
		log.Error("out of GPU memory, exiting", "err", err)
		return nil
	case sindri.IsFatal(err):
		log.Error("rendering stopped", "err", err)
	default:
		log.Error("sindri failed", "err", err)
	}
	return err
}

// newLogger builds a stderr text logger for the SINDRI_LOG level. "off"
// returns nil, which keeps sindri silent.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none":
		return nil
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
