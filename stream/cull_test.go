// Copyright 2024 The aioadc Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCullAndAverageScenario(t *testing.T) {
	data := []uint16{10, 12, 14, 16, 20, 22, 24, 26}
	n := CullAndAverage(data, 3, false)
	require.Equal(t, 2, n)
	require.Equal(t, []uint16{13, 23}, data[:n])
}

func TestCullAndAverageDiscardFirst(t *testing.T) {
	data := []uint16{0, 10, 12, 0, 20, 22}
	n := CullAndAverage(data, 2, true)
	require.Equal(t, 2, n)
	require.Equal(t, uint16(11), data[0])
	require.Equal(t, uint16(21), data[1])
}

func TestCullAndAverageOutputLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oversample := rapid.IntRange(0, 15).Draw(t, "oversample")
		groups := rapid.IntRange(0, 20).Draw(t, "groups")
		data := make([]uint16, groups*(oversample+1))
		for i := range data {
			data[i] = uint16(i)
		}
		n := CullAndAverage(data, oversample, false)
		require.Equal(t, len(data)/(oversample+1), n)
	})
}
