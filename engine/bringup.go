// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/stream"
)

// probeCalFeature issues the single-byte pre-acquisition read the
// hardware expects before any other control transfer in a bring-up
// sequence. It is opaque to the data plane; its result is ignored
// beyond whether the transfer itself succeeded.
func (e *StreamEngine) probeCalFeature(ctx context.Context) error {
	buf := make([]byte, 1)
	_, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
		Direction: api.DeviceToHost,
		Request:   api.ReqProbeCalFeature,
		Data:      buf,
	})
	return err
}

// resetCounters issues the two AUR_CTR_MODE control transfers that
// reset the device's counters prior to loading new clock divisors.
func (e *StreamEngine) resetCounters(ctx context.Context) error {
	for _, wValue := range []uint16{api.CtrModeReset, api.CtrModeWindDown} {
		_, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
			Direction: api.HostToDevice,
			Request:   api.ReqCtrMode,
			Value:     wValue,
		})
		if err != nil {
			return fmt.Errorf("engine: reset counters (wValue %#x): %w", wValue, err)
		}
	}
	return nil
}

// nativeConfigRegisterChannels is the channel count the configuration
// register holds natively; applyConfiguration issues an extra wValue
// above this to widen it before a run addressing more channels than
// that can push its cached block to the device.
const nativeConfigRegisterChannels = 16

// applyConfiguration prepares the device's configuration register
// before start_streaming: runs configured for more channels than the
// register's native width widen it with a CtrModeExpand control
// transfer. It does not transfer the cached per-channel configuration
// block to the device; for runs within the native width it issues no
// control transfer at all.
func (e *StreamEngine) applyConfiguration(ctx context.Context) error {
	if e.numChannels > nativeConfigRegisterChannels {
		_, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
			Direction: api.HostToDevice,
			Request:   api.ReqCtrMode,
			Value:     api.CtrModeExpand,
			Index:     uint16(e.numChannels),
		})
		if err != nil {
			return fmt.Errorf("engine: expand configuration register size for %d channels: %w", e.numChannels, err)
		}
	}
	return nil
}

// solveClock computes and stores the timer divisor pair for the
// engine's configured sample rate.
func (e *StreamEngine) solveClock() error {
	a, b, err := stream.SolveClockDivisors(e.cfg.SampleRateHz)
	if err != nil {
		return err
	}
	e.divisorA, e.divisorB = a, b
	return nil
}

// startStreaming issues the control transfer that tells the device to
// begin streaming sample blocks on the bulk endpoint.
func (e *StreamEngine) startStreaming(ctx context.Context) error {
	payload := api.StartAcquiringPayload
	_, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
		Direction: api.HostToDevice,
		Request:   api.ReqStartAcquiringBlock,
		Data:      payload[:],
	})
	if err != nil {
		return fmt.Errorf("engine: start streaming: %w", err)
	}
	return nil
}

// loadCounters writes the two computed timer divisors to the device's
// counter-load registers, one control transfer per divisor.
func (e *StreamEngine) loadCounters(ctx context.Context, a, b uint32) error {
	for _, wIndex := range []uint32{a, b} {
		_, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
			Direction: api.HostToDevice,
			Request:   api.ReqCtrModeLoad,
			Index:     uint16(wIndex),
		})
		if err != nil {
			return fmt.Errorf("engine: load counter (wIndex %d): %w", wIndex, err)
		}
	}
	return nil
}

// windDown runs the device-side shutdown sequence the producer worker
// performs on exit, regardless of why it is exiting: the same
// AUR_CTR_MODE reset pair used at bring-up, followed by the opcode
// 0xBC write/read exchange.
func (e *StreamEngine) windDown(ctx context.Context) error {
	if err := e.resetCounters(ctx); err != nil {
		e.log.Printf("engine: wind-down reset counters failed: %v", err)
	}

	payload := api.WindDownPayload
	if _, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
		Direction: api.HostToDevice,
		Request:   api.ReqOpcodeBC,
		Data:      payload[:],
	}); err != nil {
		return fmt.Errorf("engine: wind-down opcode 0xBC write: %w", err)
	}

	readback := make([]byte, len(payload))
	if _, err := e.entry.Transport.ControlTransfer(ctx, api.ControlRequest{
		Direction: api.DeviceToHost,
		Request:   api.ReqOpcodeBC,
		Data:      readback,
	}); err != nil {
		return fmt.Errorf("engine: wind-down opcode 0xBC read: %w", err)
	}
	return nil
}

// Start runs the device bring-up sequence and, if every step succeeds,
// spawns the producer worker and transitions the engine to Running.
// Each bring-up step fails fast: the first error aborts the sequence
// without spawning the worker.
func (e *StreamEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != NotStarted {
		return api.InvalidParameter
	}

	steps := []func(context.Context) error{
		e.probeCalFeature,
		e.resetCounters,
		e.applyConfiguration,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	if err := e.solveClock(); err != nil {
		return err
	}
	if err := e.startStreaming(ctx); err != nil {
		return err
	}
	if err := e.loadCounters(ctx, e.divisorA, e.divisorB); err != nil {
		return err
	}

	e.done = make(chan struct{})
	e.status = Running
	go e.run(ctx)
	return nil
}

// Stop requests that the producer worker exit by transitioning the
// engine to Terminated. The worker observes the transition at the
// start of its next loop iteration.
func (e *StreamEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != Running {
		return api.InvalidParameter
	}
	e.status = Terminated
	return nil
}

// Join blocks until the producer worker has exited, then transitions
// the engine to Joined. It returns api.InvalidParameter, changing
// nothing, if the engine was never started.
func (e *StreamEngine) Join() error {
	e.mu.Lock()
	done := e.done
	status := e.status
	e.mu.Unlock()

	if status == NotStarted {
		return api.InvalidParameter
	}
	if done != nil {
		<-done
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = Joined
	return nil
}
