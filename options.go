// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Command-line switches recognised by ParseArgs.
const (
	FlagFallbackGPU = "--fallback-gpu"
	FlagLowPower    = "--low-power"
)

// GPUOptions selects how an adapter is requested.
// The zero value requests a high-performance hardware adapter.
type GPUOptions struct {
	// Fallback forces a software (CPU) adapter.
	Fallback bool

	// LowPower prefers an integrated, power-saving adapter over a
	// discrete one.
	LowPower bool
}

// ParseArgs extracts GPUOptions from process arguments (without the
// program name). Only exact matches of FlagFallbackGPU and FlagLowPower
// are recognised; everything else is ignored so that the binary can be
// launched by wrappers that append their own arguments.
func ParseArgs(args []string) GPUOptions {
	var o GPUOptions
	for _, a := range args {
		switch a {
		case FlagFallbackGPU:
			o.Fallback = true
		case FlagLowPower:
			o.LowPower = true
		}
	}
	return o
}

// String formats the options the way the startup banner prints them.
func (o GPUOptions) String() string {
	return fmt.Sprintf("fallback=%t low_power=%t", o.Fallback, o.LowPower)
}

// PowerPreference maps LowPower onto the WebGPU power preference.
func (o GPUOptions) PowerPreference() gputypes.PowerPreference {
	if o.LowPower {
		return gputypes.PowerPreferenceLowPower
	}
	return gputypes.PowerPreferenceHighPerformance
}

// AdapterRequest builds the adapter request for a surface that has
// already been created. Fallback wins over LowPower: a forced fallback
// adapter is requested regardless of the power preference.
func (o GPUOptions) AdapterRequest(compatible Surface) *AdapterRequest {
	return &AdapterRequest{
		PowerPreference:   o.PowerPreference(),
		ForceFallback:     o.Fallback,
		CompatibleSurface: compatible,
	}
}

// DefaultRecoveryLimit is the number of consecutive lost or outdated
// surface reports tolerated before Render gives up.
const DefaultRecoveryLimit = 120

// DefaultLabelPrefix prefixes every GPU object label.
const DefaultLabelPrefix = "sindri"

// ClearColor is the background every frame is cleared to.
var ClearColor = gputypes.Color{R: 0.08, G: 0.08, B: 0.09, A: 1.0}

// ContextOption configures a Context during creation.
//
// Example:
//
//	gc, err := sindri.NewContext(ctx, inst, win, opts,
//	    sindri.WithRecoveryLimit(0), // retry lost surfaces forever
//	)
type ContextOption func(*contextOptions)

type contextOptions struct {
	recoveryLimit int
	labelPrefix   string
	clearColor    gputypes.Color
}

func defaultOptions() contextOptions {
	return contextOptions{
		recoveryLimit: DefaultRecoveryLimit,
		labelPrefix:   DefaultLabelPrefix,
		clearColor:    ClearColor,
	}
}

// WithRecoveryLimit bounds how many consecutive frames may end in a
// lost or outdated surface before Render returns ErrSurfaceUnrecoverable.
// Zero disables the bound. Negative values are rejected by NewContext.
func WithRecoveryLimit(n int) ContextOption {
	return func(o *contextOptions) {
		o.recoveryLimit = n
	}
}

// WithLabelPrefix replaces the "sindri" prefix of GPU debug labels.
func WithLabelPrefix(prefix string) ContextOption {
	return func(o *contextOptions) {
		o.labelPrefix = prefix
	}
}

// WithClearColor replaces the background clear color.
func WithClearColor(c gputypes.Color) ContextOption {
	return func(o *contextOptions) {
		o.clearColor = c
	}
}

func (o *contextOptions) validate() error {
	if o.recoveryLimit < 0 {
		return fmt.Errorf("%w: recovery limit %d is negative", ErrInvalidOptions, o.recoveryLimit)
	}
	if o.labelPrefix == "" {
		return fmt.Errorf("%w: empty label prefix", ErrInvalidOptions)
	}
	return nil
}

func (o *contextOptions) label(name string) string {
	return o.labelPrefix + "_" + name
}
