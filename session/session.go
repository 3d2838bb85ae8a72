// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/engine"
	"github.com/kjfield/aioadc/registry"
)

// Logger is re-exported from engine so callers configuring a Session
// don't need to import engine directly for this one type.
type Logger = engine.Logger

// ConfigFn is implemented by a function that can take a Session and
// perform some configuration, or return a non-nil error if a problem
// with the configuration is detected.
type ConfigFn func(s *Session) error

// CountsCallbackFn receives one scan's worth of raw counts per call. A
// negative return value requests that Run stop the engine and return.
type CountsCallbackFn func(scan []uint16) int

// VoltsCallbackFn receives one scan's worth of converted voltages per
// call. A negative return value requests that Run stop the engine and
// return.
type VoltsCallbackFn func(scan []float64) int

// pollInterval is how often the dispatch loop checks for newly
// available scans. There are no condition variables in this runtime's
// core, consistent with its lack of a blocking wait primitive on the
// ring buffer; the dispatcher polls instead.
const pollInterval = 5 * time.Millisecond

// Session is a type for storing and configuring a single continuous-
// acquisition run. Its members can be set directly or by calling New
// with the desired options declared using the WithXyz functions.
type Session struct {
	Registry    *registry.Registry
	DeviceIndex int
	Config      *config.StreamConfig
	ScanCount   int
	Logger      Logger
	CountsCb    CountsCallbackFn
	VoltsCb     VoltsCallbackFn

	eng *engine.StreamEngine
}

// New creates a new Session and calls each given ConfigFn with it as
// the argument, in the order provided, returning the first error
// encountered.
func New(fns ...ConfigFn) (*Session, error) {
	s := &Session{ScanCount: 4096}
	for _, fn := range fns {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithRegistry sets the device registry the Session opens its device
// from.
func WithRegistry(r *registry.Registry) ConfigFn {
	return func(s *Session) error {
		if s.Registry != nil {
			return errors.New("registry already set")
		}
		s.Registry = r
		return nil
	}
}

// WithDeviceIndex sets the device index to open.
func WithDeviceIndex(index int) ConfigFn {
	return func(s *Session) error {
		s.DeviceIndex = index
		return nil
	}
}

// WithStreamConfig sets the stream configuration to run with.
func WithStreamConfig(cfg *config.StreamConfig) ConfigFn {
	return func(s *Session) error {
		if s.Config != nil {
			return errors.New("stream configuration already set")
		}
		s.Config = cfg
		return nil
	}
}

// WithScanCount overrides the ring buffer's scan capacity. The default
// is 4096 scans.
func WithScanCount(n int) ConfigFn {
	return func(s *Session) error {
		s.ScanCount = n
		return nil
	}
}

// WithLogger sets the Logger the Session and its engine log through.
func WithLogger(l Logger) ConfigFn {
	return func(s *Session) error {
		s.Logger = l
		return nil
	}
}

// WithCountsCallback sets the per-scan counts callback. It is only
// valid for a StreamConfig with OutputKind == config.Counts.
func WithCountsCallback(fn CountsCallbackFn) ConfigFn {
	return func(s *Session) error {
		if s.CountsCb != nil {
			return errors.New("counts callback already set")
		}
		s.CountsCb = fn
		return nil
	}
}

// WithVoltsCallback sets the per-scan volts callback. It is only valid
// for a StreamConfig with OutputKind == config.Volts.
func WithVoltsCallback(fn VoltsCallbackFn) ConfigFn {
	return func(s *Session) error {
		if s.VoltsCb != nil {
			return errors.New("volts callback already set")
		}
		s.VoltsCb = fn
		return nil
	}
}

// Run opens the configured device, builds and starts a StreamEngine,
// and dispatches scans to the configured callback until the callback
// requests a stop, ctx is canceled, or the engine terminates on its
// own (a fatal USB failure or a fixed-length capture completing). It
// always stops, joins, and destroys the engine before returning, and
// releases the device from the registry.
func (s *Session) Run(ctx context.Context) error {
	if s.Registry == nil {
		return errors.New("session: no registry configured")
	}
	if s.Config == nil {
		return errors.New("session: no stream configuration set")
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("session: invalid stream configuration: %w", err)
	}
	if s.Config.OutputKind == config.Volts && s.VoltsCb == nil {
		return errors.New("session: volts output configured without a volts callback")
	}
	if s.Config.OutputKind == config.Counts && s.CountsCb == nil {
		return errors.New("session: counts output configured without a counts callback")
	}

	entry, err := s.Registry.Open(s.DeviceIndex, s.Config)
	if err != nil {
		return fmt.Errorf("session: opening device %d: %w", s.DeviceIndex, err)
	}
	defer func() {
		if err := s.Registry.Release(s.DeviceIndex); err != nil && s.Logger != nil {
			s.Logger.Printf("session: releasing device %d failed: %v", s.DeviceIndex, err)
		}
	}()

	eng, err := engine.New(entry, s.Config, s.ScanCount, s.Logger)
	if err != nil {
		return fmt.Errorf("session: building engine: %w", err)
	}

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("session: starting engine: %w", err)
	}
	s.eng = eng
	defer func() { s.eng = nil }()

	numChannels := s.Config.NumChannels
	countsBuf := make([]uint16, numChannels)
	voltsBuf := make([]float64, numChannels)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

runLoop:
	for {
		select {
		case <-ctx.Done():
			break runLoop
		case <-ticker.C:
			if eng.Status() != engine.Running {
				break runLoop
			}
		}

		for {
			var (
				n     int
				readErr error
			)
			if s.Config.OutputKind == config.Volts {
				n, readErr = eng.ReadVolts(voltsBuf)
			} else {
				n, readErr = eng.Read(countsBuf)
			}
			if readErr != nil || n < numChannels {
				break
			}

			var cbRes int
			if s.Config.OutputKind == config.Volts {
				cbRes = s.VoltsCb(voltsBuf)
			} else {
				cbRes = s.CountsCb(countsBuf)
			}
			if cbRes < 0 {
				break runLoop
			}
		}
	}

	if err := eng.Stop(); err != nil && s.Logger != nil {
		s.Logger.Printf("session: stop failed (engine may have already terminated): %v", err)
	}
	if err := eng.Join(); err != nil {
		return fmt.Errorf("session: joining engine: %w", err)
	}
	if err := eng.Destroy(); err != nil {
		return fmt.Errorf("session: destroying engine: %w", err)
	}
	return eng.ExitCode()
}

// ProducedSeq returns the running engine's produced-scan sequence
// counter, suitable for use as a helpers/callback.SeqFn. It returns 0
// if Run is not currently executing.
func (s *Session) ProducedSeq() uint32 {
	if s.eng == nil {
		return 0
	}
	return s.eng.ProducedSeq()
}

// Run is a simplified wrapper around calling New, checking for an
// error, and then calling Session.Run.
func Run(ctx context.Context, fns ...ConfigFn) error {
	s, err := New(fns...)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
