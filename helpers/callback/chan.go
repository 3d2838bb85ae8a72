// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import "errors"

// CountsMsg is a type for storing or transferring one scan's worth of
// raw counts, specifically for sending via a chan.
//
// A session sample callback does not own the scan buffer it is called
// with; the dispatcher reuses it on the next call. A callback that
// stores one in a CountsMsg must first copy the Scan slice, which
// CountsChan's own Callback does for you.
type CountsMsg struct {
	Scan   []uint16
	Drops  uint32
	MsgNum uint64
}

// VoltsMsg is the Volts-output-kind counterpart of CountsMsg.
type VoltsMsg struct {
	Scan   []float64
	Drops  uint32
	MsgNum uint64
}

// SeqFn reports a StreamEngine's current produced-scan sequence
// number, typically engine.StreamEngine.ProducedSeq. It is queried
// once per callback so a chan's messages can carry a dropped-scan
// count alongside each delivered scan.
type SeqFn func() uint32

// CountsChan provides a counts sample callback that sends a message
// for each call, letting a consumer handle scans asynchronously to the
// session's dispatch goroutine. This keeps the dispatch goroutine free
// to keep draining the ring buffer promptly.
type CountsChan struct {
	C      <-chan CountsMsg
	c      chan<- CountsMsg
	done   chan struct{}
	msgNum uint64
	seq    SeqFn
	gap    func(uint32) uint32
}

// NewCountsChan creates a CountsChan. depth is the channel's buffer
// depth; since the session callback must never block, a full channel
// simply drops the message rather than waiting for a receiver. A
// depth of 0 drops any message that has no waiting receiver. seq may
// be nil, in which case Drops is always reported as 0.
func NewCountsChan(depth uint, seq SeqFn) *CountsChan {
	c := make(chan CountsMsg, depth)
	return &CountsChan{
		C:    c,
		c:    c,
		done: make(chan struct{}, 1),
		seq:  seq,
		gap:  NewDropDetect(),
	}
}

// Close stops any further messages from being sent on C. The chan
// itself is not closed until the next call to Callback.
func (s *CountsChan) Close() error {
	select {
	case <-s.done:
		return errors.New("already closed")
	default:
		close(s.done)
		return nil
	}
}

// Callback is a session.CountsCallbackFn. It always returns 0,
// requesting the session keep streaming; call Close to have it signal
// stream end instead.
func (s *CountsChan) Callback(scan []uint16) int {
	select {
	case <-s.done:
		if s.c != nil {
			close(s.c)
			s.c = nil
		}
		return -1
	default:
	}

	buf := make([]uint16, len(scan))
	copy(buf, scan)

	var drops uint32
	if s.seq != nil {
		if delta := s.gap(s.seq()); delta > 1 {
			drops = delta - 1
		}
	}

	msg := CountsMsg{Scan: buf, Drops: drops, MsgNum: s.msgNum}
	s.msgNum++

	select {
	case s.c <- msg:
	default:
	}
	return 0
}

// VoltsChan is the Volts-output-kind counterpart of CountsChan.
type VoltsChan struct {
	C      <-chan VoltsMsg
	c      chan<- VoltsMsg
	done   chan struct{}
	msgNum uint64
	seq    SeqFn
	gap    func(uint32) uint32
}

// NewVoltsChan creates a VoltsChan with the same buffering and drop-
// reporting semantics as NewCountsChan.
func NewVoltsChan(depth uint, seq SeqFn) *VoltsChan {
	c := make(chan VoltsMsg, depth)
	return &VoltsChan{
		C:    c,
		c:    c,
		done: make(chan struct{}, 1),
		seq:  seq,
		gap:  NewDropDetect(),
	}
}

// Close stops any further messages from being sent on C.
func (s *VoltsChan) Close() error {
	select {
	case <-s.done:
		return errors.New("already closed")
	default:
		close(s.done)
		return nil
	}
}

// Callback is a session.VoltsCallbackFn.
func (s *VoltsChan) Callback(scan []float64) int {
	select {
	case <-s.done:
		if s.c != nil {
			close(s.c)
			s.c = nil
		}
		return -1
	default:
	}

	buf := make([]float64, len(scan))
	copy(buf, scan)

	var drops uint32
	if s.seq != nil {
		if delta := s.gap(s.seq()); delta > 1 {
			drops = delta - 1
		}
	}

	msg := VoltsMsg{Scan: buf, Drops: drops, MsgNum: s.msgNum}
	s.msgNum++

	select {
	case s.c <- msg:
	default:
	}
	return 0
}
