// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "github.com/kjfield/aioadc/api"

// countsFullScale is the divisor that maps a 16-bit unsigned count to
// the unit interval before it is scaled by a gain range's span.
const countsFullScale = 65536

// CountsToVolts converts n raw counts from in, starting at in[0], into
// out starting at out[outPos], using gains[cursor] for each sample and
// advancing cursor by one channel position (mod numChannels) per
// sample. It returns the number of samples converted (always n) and
// the cursor value to resume from on the next call, which lets a
// caller carry channel alignment across packet boundaries.
func CountsToVolts(cursor int, in []uint16, out []float64, outPos int, gains []api.GainRange, numChannels int) (n int, nextCursor int) {
	c := cursor
	for i := 0; i < len(in); i++ {
		g := gains[c]
		out[outPos] = (float64(in[i])/countsFullScale)*g.Span + g.MinVolts
		outPos++
		c = (c + 1) % numChannels
	}
	return len(in), c
}
