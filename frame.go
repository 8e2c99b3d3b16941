// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sindri

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// FrameState is the position of the frame renderer within one frame.
type FrameState uint8

const (
	FrameStateIdle FrameState = iota
	FrameStateAcquiring
	FrameStateRecording
	FrameStateSubmitted
	FrameStatePresented
)

func (s FrameState) String() string {
	switch s {
	case FrameStateIdle:
		return "Idle"
	case FrameStateAcquiring:
		return "Acquiring"
	case FrameStateRecording:
		return "Recording"
	case FrameStateSubmitted:
		return "Submitted"
	case FrameStatePresented:
		return "Presented"
	default:
		return fmt.Sprintf("FrameState(%d)", uint8(s))
	}
}

// AcquireClass is how the renderer reacts to the result of acquiring or
// presenting a surface texture.
type AcquireClass uint8

const (
	// AcquireSuccess: render the frame.
	AcquireSuccess AcquireClass = iota

	// AcquireRecoverable: the surface is lost or outdated. Reconfigure at
	// the current size and skip the frame.
	AcquireRecoverable

	// AcquireFatal: the device is out of memory. Stop rendering.
	AcquireFatal

	// AcquireSoft: anything else. Log and skip the frame.
	AcquireSoft
)

func (c AcquireClass) String() string {
	switch c {
	case AcquireSuccess:
		return "success"
	case AcquireRecoverable:
		return "recoverable"
	case AcquireFatal:
		return "fatal"
	case AcquireSoft:
		return "soft"
	default:
		return fmt.Sprintf("AcquireClass(%d)", uint8(c))
	}
}

// ClassifyAcquire maps an acquire or present result onto exactly one
// AcquireClass. Every error not recognised as lost, outdated or out of
// memory is soft.
func ClassifyAcquire(err error) AcquireClass {
	switch {
	case err == nil:
		return AcquireSuccess
	case errors.Is(err, ErrOutOfMemory):
		return AcquireFatal
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		return AcquireRecoverable
	default:
		return AcquireSoft
	}
}

// FrameOutcome is what one call to RenderFrame did.
type FrameOutcome uint8

const (
	// FramePresented: a frame was submitted and presented.
	FramePresented FrameOutcome = iota

	// FrameSkippedMinimized: the window has a zero dimension.
	FrameSkippedMinimized

	// FrameSkippedRecovered: the surface was lost or outdated and has
	// been reconfigured.
	FrameSkippedRecovered

	// FrameSkippedError: a non-fatal failure was logged.
	FrameSkippedError

	// FrameFatal: rendering cannot continue.
	FrameFatal
)

func (o FrameOutcome) String() string {
	switch o {
	case FramePresented:
		return "presented"
	case FrameSkippedMinimized:
		return "skipped (minimized)"
	case FrameSkippedRecovered:
		return "skipped (surface recovered)"
	case FrameSkippedError:
		return "skipped (error)"
	case FrameFatal:
		return "fatal"
	default:
		return fmt.Sprintf("FrameOutcome(%d)", uint8(o))
	}
}

// frameRenderer records and presents one frame per call.
type frameRenderer struct {
	device       Device
	queue        Queue
	surface      Surface
	configurator *surfaceConfigurator
	pipeline     RenderPipeline
	vertexBuffer Buffer
	vertexCount  uint32
	opts         *contextOptions

	state FrameState

	// recoveries counts consecutive frames that ended in a lost or
	// outdated surface. Reset by a presented frame.
	recoveries int
}

// render runs Idle -> Acquiring -> Recording -> Submitted -> Presented
// and always leaves the renderer Idle.
func (r *frameRenderer) render() (FrameOutcome, error) {
	defer r.setState(FrameStateIdle)

	if r.configurator.minimized {
		return FrameSkippedMinimized, nil
	}

	r.setState(FrameStateAcquiring)
	tex, err := r.surface.Acquire()
	if err != nil {
		return r.fail("acquire", err)
	}

	r.setState(FrameStateRecording)
	cmd, err := r.record(tex.View())
	if err != nil {
		tex.Discard()
		return r.fail("record", err)
	}

	if err := r.queue.Submit(cmd); err != nil {
		tex.Discard()
		return r.fail("submit", err)
	}
	r.setState(FrameStateSubmitted)

	if err := tex.Present(); err != nil {
		return r.fail("present", err)
	}
	r.setState(FrameStatePresented)
	r.recoveries = 0

	if tex.Suboptimal() {
		Logger().Debug("sindri: suboptimal surface texture presented, reconfiguring")
		if err := r.configurator.reconfigure(); err != nil && ClassifyAcquire(err) == AcquireFatal {
			return FrameFatal, err
		}
	}
	return FramePresented, nil
}

// record encodes the single clear-and-draw pass. The pass is ended
// before the encoder is finished.
func (r *frameRenderer) record(view TextureView) (CommandBuffer, error) {
	enc, err := r.device.CreateCommandEncoder(r.opts.label("encoder"))
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	pass, err := enc.BeginRenderPass(&RenderPassDescriptor{
		Label: r.opts.label("render_pass"),
		ColorAttachments: []ColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.opts.clearColor,
			},
		},
	})
	if err != nil {
		enc.Discard()
		return nil, fmt.Errorf("begin render pass: %w", err)
	}
	pass.SetPipeline(r.pipeline)
	pass.SetVertexBuffer(0, r.vertexBuffer)
	pass.Draw(r.vertexCount, 1, 0, 0)
	if err := pass.End(); err != nil {
		enc.Discard()
		return nil, fmt.Errorf("end render pass: %w", err)
	}

	cmd, err := enc.Finish()
	if err != nil {
		enc.Discard()
		return nil, fmt.Errorf("finish encoding: %w", err)
	}
	return cmd, nil
}

// fail applies the failure policy to an error raised at stage.
func (r *frameRenderer) fail(stage string, err error) (FrameOutcome, error) {
	log := Logger()
	switch ClassifyAcquire(err) {
	case AcquireRecoverable:
		r.recoveries++
		limit := r.opts.recoveryLimit
		if limit > 0 && r.recoveries > limit {
			log.Error("sindri: surface did not recover", "stage", stage, "attempts", r.recoveries, "error", err)
			return FrameFatal, fmt.Errorf("%w after %d attempts: %w", ErrSurfaceUnrecoverable, r.recoveries, err)
		}
		log.Warn("sindri: surface needs reconfiguration, frame skipped", "stage", stage, "error", err)
		if cerr := r.configurator.reconfigure(); cerr != nil {
			if ClassifyAcquire(cerr) == AcquireFatal {
				log.Error("sindri: reconfigure failed", "error", cerr)
				return FrameFatal, cerr
			}
			log.Warn("sindri: reconfigure failed, retrying next frame", "error", cerr)
		}
		return FrameSkippedRecovered, nil
	case AcquireFatal:
		log.Error("sindri: out of memory, rendering stopped", "stage", stage, "error", err)
		return FrameFatal, fmt.Errorf("%s: %w", stage, err)
	default:
		log.Warn("sindri: frame skipped", "stage", stage, "error", err)
		return FrameSkippedError, nil
	}
}

func (r *frameRenderer) setState(s FrameState) {
	if r.state == s {
		return
	}
	Logger().Debug("sindri: frame state", "from", r.state, "to", s)
	r.state = s
}
