// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"testing"

	"github.com/kjfield/aioadc/api"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRingBufferWrap(t *testing.T) {
	r := NewRingBuffer[uint16](10, 1)

	n, err := r.Write([]uint16{1, 2, 3, 4, 5, 6, 7, 8, 9}, 9, Normal)
	require.NoError(t, err)
	require.Equal(t, 9, n)

	dst := make([]uint16, 5)
	got := r.Read(dst, 5)
	require.Equal(t, 5, got)
	require.Equal(t, []uint16{1, 2, 3, 4, 5}, dst)

	n, err = r.Write([]uint16{10, 11, 12, 13, 14}, 5, Normal)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	dst = make([]uint16, 5)
	got = r.Read(dst, 5)
	require.Equal(t, 5, got)
	require.Equal(t, []uint16{6, 7, 8, 9, 10}, dst)

	dst = make([]uint16, 4)
	got = r.Read(dst, 4)
	require.Equal(t, 4, got)
	require.Equal(t, []uint16{11, 12, 13, 14}, dst)

	require.Equal(t, 0, r.AvailableRead())
}

func TestRingBufferAllOrNoneRefusal(t *testing.T) {
	r := NewRingBuffer[uint16](4, 1)
	_, err := r.Write([]uint16{1, 2}, 2, Normal)
	require.NoError(t, err)

	n, err := r.Write([]uint16{3, 4, 5}, 3, AllOrNone)
	require.ErrorIs(t, err, api.NotEnoughMemory)
	require.Equal(t, 0, n)
	require.Equal(t, 2, r.AvailableRead())
}

func TestRingBufferOverride(t *testing.T) {
	r := NewRingBuffer[uint16](4, 1)
	_, err := r.Write([]uint16{1, 2, 3}, 3, Normal)
	require.NoError(t, err)

	n, err := r.Write([]uint16{4, 5, 6}, 3, Override)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	dst := make([]uint16, 3)
	got := r.Read(dst, 3)
	require.Equal(t, 3, got)
	require.Equal(t, []uint16{4, 5, 6}, dst)
}

func TestRingBufferRoundTripEmpty(t *testing.T) {
	r := NewRingBuffer[uint16](16, 1)
	src := []uint16{1, 2, 3, 4}
	n, err := r.Write(src, len(src), AllOrNone)
	require.NoError(t, err)
	require.Equal(t, len(src), n)

	dst := make([]uint16, len(src))
	got := r.Read(dst, len(src))
	require.Equal(t, len(src), got)
	require.Equal(t, src, dst)
}

func TestRingBufferResetIdempotent(t *testing.T) {
	r := NewRingBuffer[uint16](8, 1)
	r.Write([]uint16{1, 2, 3}, 3, Normal)
	r.SetExtra(2)

	r.Reset()
	r.Reset()

	require.Equal(t, 0, r.AvailableRead())
	require.Equal(t, 0, r.Extra())
}

func TestRingBufferInvariantOccupancyBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(2, 32).Draw(t, "size")
		r := NewRingBuffer[uint16](size, 1)

		steps := rapid.IntRange(0, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "doWrite") {
				count := rapid.IntRange(0, size).Draw(t, "count")
				src := make([]uint16, count)
				r.Write(src, count, Normal)
			} else {
				max := rapid.IntRange(0, size).Draw(t, "max")
				dst := make([]uint16, max)
				r.Read(dst, max)
			}
			occ := r.AvailableRead()
			require.GreaterOrEqual(t, occ, 0)
			require.LessOrEqual(t, occ, size-1)
		}
	})
}

func TestRingBufferExtraBelowNumChannels(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numChannels := rapid.IntRange(1, 16).Draw(t, "numChannels")
		r := NewRingBuffer[uint16](numChannels*8, numChannels)

		extra := rapid.IntRange(0, numChannels-1).Draw(t, "extra")
		r.SetExtra(extra)
		require.Less(t, r.Extra(), numChannels)
	})
}
