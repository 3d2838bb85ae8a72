// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"sync"

	"github.com/kjfield/aioadc/api"
	"github.com/kjfield/aioadc/config"
	"github.com/kjfield/aioadc/registry"
	"github.com/kjfield/aioadc/stream"
)

// Status is the engine's lifecycle state. Transitions are serialized
// by StreamEngine's mutex: NotStarted -> Running -> Terminated ->
// Joined.
type Status int32

const (
	NotStarted Status = iota
	Running
	Terminated
	Joined
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	case Joined:
		return "joined"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// maxUsbFailures is the number of consecutive bulk-read failures at
// which the producer worker treats the stream as fatally broken and
// terminates.
const maxUsbFailures = 5

// StreamEngine owns the ring buffer, configuration, worker goroutine,
// and scan-boundary bookkeeping for one continuous-acquisition run. It
// holds a non-owning reference to a registry.Entry; the registry
// retains ownership of the underlying transport.
type StreamEngine struct {
	mu     sync.Mutex
	log    Logger
	entry  *registry.Entry
	cfg    *config.StreamConfig
	gains  []api.GainRange

	numChannels int
	scanCount   int
	size        int // ring capacity in elements, including the reserved slot

	ringCounts *stream.RingBuffer[uint16]
	ringVolts  *stream.RingBuffer[float64]

	divisorA, divisorB uint32

	status   Status
	exitCode error

	done chan struct{}

	// channelCursor tracks which channel position the next converted
	// sample belongs to, carried across packet boundaries alongside
	// the ring's own Extra bookkeeping.
	channelCursor int

	// spillover holds residual culled counts from an in-progress scan
	// that a packet did not complete; it is engine-owned, never
	// written past the caller's buffer (see DESIGN.md open question
	// resolution).
	spillover    []uint16
	spilloverLen int

	totalCopied int // samples written so far, for fixed-length counts captures

	// producedSeq counts every scan the producer has attempted to
	// enqueue this run, successful or dropped by a full ring, and
	// wraps like the vendor API's own FirstSampleNum/NumSamples
	// sequence counters. helpers/callback's drop detector consumes it
	// to report scans lost to a full ring between two delivered scans.
	producedSeq uint32
}

// New creates a StreamEngine bound to entry and cfg. scanCount is the
// number of scans the ring buffer can hold; the ring's element
// capacity is scanCount*NumChannels + 1, the extra slot disambiguating
// empty from full.
func New(entry *registry.Entry, cfg *config.StreamConfig, scanCount int, log Logger) (*StreamEngine, error) {
	if cfg.NumChannels <= 0 {
		return nil, api.InvalidParameter
	}
	if scanCount <= 0 {
		return nil, api.InvalidParameter
	}
	if log == nil {
		log = nopLogger{}
	}

	e := &StreamEngine{
		log:         log,
		entry:       entry,
		cfg:         cfg,
		gains:       cfg.GainTable(),
		numChannels: cfg.NumChannels,
		scanCount:   scanCount,
		size:        scanCount*cfg.NumChannels + 1,
		spillover:   make([]uint16, cfg.NumChannels),
	}
	if cfg.OutputKind == config.Volts {
		e.ringVolts = stream.NewRingBuffer[float64](e.size, e.numChannels)
	} else {
		e.ringCounts = stream.NewRingBuffer[uint16](e.size, e.numChannels)
	}
	return e, nil
}

// SetClock overrides the configured sample rate. It is only valid in
// NotStarted.
func (e *StreamEngine) SetClock(hz float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	e.cfg.SampleRateHz = hz
	return nil
}

// SetOversample overrides the configured oversample factor. It is only
// valid in NotStarted.
func (e *StreamEngine) SetOversample(k uint8) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	e.cfg.NumOversamples = k
	return nil
}

// SetGainRange sets the gain code for channels [start, end) and is
// only valid in NotStarted.
func (e *StreamEngine) SetGainRange(start, end int, code api.GainCode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	if start < 0 || end > e.numChannels || start > end {
		return api.InvalidParameter
	}
	for i := start; i < end; i++ {
		e.gains[i] = api.GainRanges[code]
	}
	return nil
}

// SetDifferential overrides the configured differential-mode flag. It
// is only valid in NotStarted.
func (e *StreamEngine) SetDifferential(en bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	e.cfg.Differential = en
	return nil
}

// SetDiscardFirst overrides the configured discard-first-sample flag.
// It is only valid in NotStarted.
func (e *StreamEngine) SetDiscardFirst(en bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	e.cfg.DiscardFirstSample = en
	return nil
}

// SetTesting overrides the configured testing flag. It is only valid
// in NotStarted.
func (e *StreamEngine) SetTesting(en bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != NotStarted {
		return api.InvalidParameter
	}
	e.cfg.Testing = en
	return nil
}

// Status returns the engine's current lifecycle state.
func (e *StreamEngine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// ExitCode returns the error that caused the worker to stop, or nil if
// it has not stopped or stopped cleanly.
func (e *StreamEngine) ExitCode() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exitCode
}

// ProducedSeq returns the running count of scans the producer has
// attempted to enqueue so far this run, including any dropped by a
// full ring. It wraps at 2^32, matching the vendor sample-counter
// semantics helpers/callback.NewDropDetect is built to tolerate.
func (e *StreamEngine) ProducedSeq() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.producedSeq
}

// WritePosition returns the ring buffer's current occupancy in
// elements (Size-1 minus AvailableWrite), for diagnostic use. It does
// not report the ring's internal write index.
func (e *StreamEngine) WritePosition() int {
	if e.ringVolts != nil {
		return e.ringVolts.Size() - 1 - e.ringVolts.AvailableWrite()
	}
	return e.ringCounts.Size() - 1 - e.ringCounts.AvailableWrite()
}

// ReadPosition returns the number of elements currently readable from
// the ring buffer (AvailableRead), for diagnostic use. It does not
// report the ring's internal read index.
func (e *StreamEngine) ReadPosition() int {
	if e.ringVolts != nil {
		return e.ringVolts.AvailableRead()
	}
	return e.ringCounts.AvailableRead()
}

// Read drains up to len(dst) raw counts from the ring. It is only
// valid when the configured output kind is Counts.
func (e *StreamEngine) Read(dst []uint16) (int, error) {
	if e.ringCounts == nil {
		return 0, api.InvalidParameter
	}
	return e.ringCounts.Read(dst, len(dst)), nil
}

// ReadVolts drains up to len(dst) converted voltages from the ring. It
// is only valid when the configured output kind is Volts.
func (e *StreamEngine) ReadVolts(dst []float64) (int, error) {
	if e.ringVolts == nil {
		return 0, api.InvalidParameter
	}
	return e.ringVolts.Read(dst, len(dst)), nil
}

// PopScans drains exactly numScans complete scans' worth of elements
// into dst, or fewer if that many are not yet available; the return
// value is always a multiple of NumChannels.
func (e *StreamEngine) PopScans(dst []uint16, numScans int) (int, error) {
	if e.ringCounts == nil {
		return 0, api.InvalidParameter
	}
	avail := e.ringCounts.ScansAvailable()
	if numScans > avail {
		numScans = avail
	}
	want := numScans * e.numChannels
	if want > len(dst) {
		want = (len(dst) / e.numChannels) * e.numChannels
	}
	return e.ringCounts.Read(dst, want), nil
}

// Destroy releases the ring buffers and any remaining engine state.
// It must only be called after Join, matching §4.8's JOINED -> destroy
// transition.
func (e *StreamEngine) Destroy() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != Joined {
		return api.InvalidParameter
	}
	e.ringCounts = nil
	e.ringVolts = nil
	return nil
}
