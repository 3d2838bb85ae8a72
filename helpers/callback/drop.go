// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import "math"

// NewDropDetect creates a function that detects and quantifies gaps in
// a monotonically increasing, wrapping uint32 sequence counter, such
// as engine.StreamEngine.ProducedSeq. To work, it must be called with
// every new counter value observed, in order, so its internal state
// stays valid.
func NewDropDetect() func(seq uint32) uint32 {
	var (
		valid bool
		last  uint32
	)
	return func(seq uint32) uint32 {
		defer func() {
			last = seq
			valid = true
		}()

		if !valid {
			return 0
		}
		if seq == last {
			return 0
		}

		switch seq > last {
		case true:
			return seq - last
		default:
			// seq wrapped past math.MaxUint32 since the last observation.
			return (math.MaxUint32 - last) + seq + 1
		}
	}
}
