// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"math"
	"testing"
)

func TestDropDetect(t *testing.T) {
	t.Parallel()

	detect := NewDropDetect()

	// Nothing to compare against yet, so always zero on the first call.
	if n := detect(5678); n != 0 {
		t.Errorf("delta reported on first call: got %d, want 0", n)
	}

	// A normal, non-wrapping increase.
	if n := detect(5679); n != 1 {
		t.Errorf("wrong delta: got %d, want 1", n)
	}

	// A larger jump, as would follow a gap of dropped scans.
	if n := detect(5689); n != 10 {
		t.Errorf("wrong delta: got %d, want 10", n)
	}

	// Repeating the same sequence value reports no further delta.
	if n := detect(5689); n != 0 {
		t.Errorf("delta reported on repeated value: got %d, want 0", n)
	}
}

func TestDropDetectWraps(t *testing.T) {
	t.Parallel()

	detect := NewDropDetect()
	detect(math.MaxUint32 - 2)

	// Step forward across the wraparound boundary by 4: MaxUint32-2 ->
	// MaxUint32-1 -> MaxUint32 -> 0 -> 1.
	if n := detect(1); n != 4 {
		t.Errorf("wrong delta across wrap: got %d, want 4", n)
	}
}
