// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"math"

	"github.com/kjfield/aioadc/api"
)

// maxDivisor is the largest value either timer divisor can hold; both
// divisors are loaded into 16-bit hardware counters.
const maxDivisor = 0xffff

// SolveClockDivisors picks a pair of 16-bit timer divisors (a, b) that
// realize hz as closely as possible from the fixed root clock, using
// the same square-root sweep the hardware's own configuration tooling
// uses: start from the divisor pair nearest the geometric mean of the
// total divisor ratio, then sweep the second divisor downward looking
// for a smaller absolute frequency error, stopping early on an exact
// match.
func SolveClockDivisors(hz float64) (a, b uint32, err error) {
	if hz == 0 {
		return 0, 0, api.InvalidParameter
	}
	if hz*4 >= api.RootClockHz {
		return 2, 2, nil
	}

	total := float64(api.RootClockHz) / hz
	l := math.Sqrt(total)
	if l > maxDivisor {
		return maxDivisor, maxDivisor, nil
	}

	a = uint32(math.Round(total / l))
	bStart := uint32(math.Round(l))
	b = bStart

	minErr := math.Abs(total - float64(a)*l)

	for lv := bStart; lv >= 2; lv-- {
		candidateA := uint32(math.Round(total / float64(lv)))
		if candidateA > maxDivisor {
			break
		}
		a = candidateA

		e := math.Abs(total - float64(a)*float64(lv))
		if e <= 0 {
			minErr = 0
			b = lv
			break
		}
		if e < minErr {
			b = lv
			minErr = e
		}
		a = uint32(math.Round(total / float64(b)))
	}
	return a, b, nil
}
