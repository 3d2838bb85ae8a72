// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

// GainCode selects one (MinVolts, Span) pair from GainRanges. It is the
// wire-level index written into a per-channel configuration block; the
// config package wraps it with JSON validation.
type GainCode uint8

// GainRange is one entry of the fixed gain range table: the full-scale
// span in volts and the voltage corresponding to a raw count of zero.
type GainRange struct {
	Span     float64
	MinVolts float64
}

// GainRanges is the constant gain code lookup table. Codes 0-7 are the
// bipolar ranges (full-scale is split evenly around zero volts); codes
// 8-15 are the matching unipolar ranges (zero volts at a raw count of
// zero). Codes 16-31 duplicate 0-15 for the differential-mode variant
// of each range, since the hardware's differential inputs do not alter
// the conversion math, only which physical pins are sampled.
var GainRanges = [32]GainRange{
	0:  {Span: 20, MinVolts: -10},
	1:  {Span: 10, MinVolts: -5},
	2:  {Span: 4, MinVolts: -2},
	3:  {Span: 2, MinVolts: -1},
	4:  {Span: 1, MinVolts: -0.5},
	5:  {Span: 0.5, MinVolts: -0.25},
	6:  {Span: 0.25, MinVolts: -0.125},
	7:  {Span: 0.125, MinVolts: -0.0625},
	8:  {Span: 10, MinVolts: 0},
	9:  {Span: 5, MinVolts: 0},
	10: {Span: 2, MinVolts: 0},
	11: {Span: 1, MinVolts: 0},
	12: {Span: 0.5, MinVolts: 0},
	13: {Span: 0.25, MinVolts: 0},
	14: {Span: 0.125, MinVolts: 0},
	15: {Span: 0.0625, MinVolts: 0},
}

func init() {
	for i := 0; i < 16; i++ {
		GainRanges[16+i] = GainRanges[i]
	}
}
