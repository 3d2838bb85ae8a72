// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"encoding/binary"
	"io"
	"math"
)

// NewCountsWrite creates a function that writes the provided counts to
// the provided io.Writer. The function is roughly equivalent to
// binary.Write() except for some application specific optimizations.
// The function uses a persistent buffer to avoid allocations.
func NewCountsWrite(order binary.ByteOrder) func(out io.Writer, x []uint16) (int, error) {
	const sizeOfScalar = 2
	buf := make([]byte, 4096)
	return func(out io.Writer, x []uint16) (int, error) {
		numBytes := len(x) * sizeOfScalar
		if len(buf) < numBytes {
			next := len(buf) * sizeOfScalar
			if next < numBytes {
				next = numBytes
			}
			buf = make([]byte, next)
		}
		switch order {
		case binary.LittleEndian:
			bi := 0
			for i := range x {
				binary.LittleEndian.PutUint16(buf[bi:], x[i])
				bi += sizeOfScalar
			}
		case binary.BigEndian:
			bi := 0
			for i := range x {
				binary.BigEndian.PutUint16(buf[bi:], x[i])
				bi += sizeOfScalar
			}
		default:
			bi := 0
			for i := range x {
				order.PutUint16(buf[bi:], x[i])
				bi += sizeOfScalar
			}
		}
		return out.Write(buf[:numBytes])
	}
}

// NewVoltsWrite creates a function that writes the provided voltages to
// the provided io.Writer as IEEE 754 float64 values. The function is
// roughly equivalent to binary.Write() except for some application
// specific optimizations. The function uses a persistent buffer to
// avoid allocations.
func NewVoltsWrite(order binary.ByteOrder) func(out io.Writer, x []float64) (int, error) {
	const sizeOfScalar = 8
	buf := make([]byte, 4096)
	return func(out io.Writer, x []float64) (int, error) {
		numBytes := len(x) * sizeOfScalar
		if len(buf) < numBytes {
			next := len(buf) * 2
			if next < numBytes {
				next = numBytes
			}
			buf = make([]byte, next)
		}
		switch order {
		case binary.LittleEndian:
			bi := 0
			for i := range x {
				binary.LittleEndian.PutUint64(buf[bi:], math.Float64bits(x[i]))
				bi += sizeOfScalar
			}
		case binary.BigEndian:
			bi := 0
			for i := range x {
				binary.BigEndian.PutUint64(buf[bi:], math.Float64bits(x[i]))
				bi += sizeOfScalar
			}
		default:
			bi := 0
			for i := range x {
				order.PutUint64(buf[bi:], math.Float64bits(x[i]))
				bi += sizeOfScalar
			}
		}
		return out.Write(buf[:numBytes])
	}
}
